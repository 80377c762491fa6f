// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ErrUnknownTool is returned when a tool isn't in the registry, or the
// requested executable index is past the end of its list.
var ErrUnknownTool = errors.New("unknown tool")

// PathConfig holds the root directories the pipeline writes to and reads from.
type PathConfig struct {
	// root directory of the reference databases (pfam, nr, uniprot_sprot, ...)
	Databases string `mapstructure:"databases"`

	// directory with helper scripts
	Scripts string `mapstructure:"scripts"`

	// directory that task stdout/stderr logs are written to
	Logs string `mapstructure:"logs"`
}

// Tool is an entry in the external tool registry.
type Tool struct {
	// optional directory with the executables. If empty, $PATH is used
	Path string `mapstructure:"path"`

	// executables shipped by the tool, in a fixed order (eg hmmer: hmmscan, hmmpress)
	Exes []string `mapstructure:"exes"`
}

// Database is a reference sequence database that should be prepared for searching.
type Database struct {
	// short name, used in task names
	Name string `mapstructure:"name"`

	// path to the (optionally gzipped) FASTA
	Fasta string `mapstructure:"fasta"`

	// "prot" or "nucl"
	Type string `mapstructure:"type"`
}

// MetricSource is a single report to parse during `metrics collect`.
type MetricSource struct {
	// tool name: cegma, busco, detonate, transrate, transrate-readcount, fastqc
	Tool string `mapstructure:"tool"`

	// directory holding the report
	Dir string `mapstructure:"dir"`

	// glob pattern for the report within Dir
	Pattern string `mapstructure:"pattern"`
}

// LogConfig is for the zap logger built by the root command.
type LogConfig struct {
	// debug, info, warn or error
	Level string `mapstructure:"level"`

	// json or console
	Encoding string `mapstructure:"encoding"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	Paths PathConfig `mapstructure:"paths"`

	// Tools is the external tool registry, keyed by tool name
	Tools map[string]Tool `mapstructure:"tools"`

	// Databases to prepare with `pipekit tasks`
	Databases []Database `mapstructure:"databases"`

	// Metrics sources for `pipekit metrics collect`
	Metrics []MetricSource `mapstructure:"metrics"`

	Log LogConfig `mapstructure:"log"`
}

// DefaultTools is the tool registry used when a settings file doesn't list a tool.
func DefaultTools() map[string]Tool {
	return map[string]Tool{
		"blast":   {Exes: []string{"makeblastdb", "blastx", "blastp", "blastn", "tblastn"}},
		"diamond": {Exes: []string{"diamond"}},
		"hmmer":   {Exes: []string{"hmmscan", "hmmpress"}},
		"pipekit": {Exes: []string{"pipekit"}},
	}
}

// New returns a new Config struct populated by the Viper settings
// (from a settings file, if one was set) and command line flags
// bound to it.
func New(v *viper.Viper) (*Config, error) {
	v.SetDefault("paths.databases", "databases")
	v.SetDefault("paths.scripts", "scripts")
	v.SetDefault("paths.logs", "logs")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	if settings := v.GetString("settings"); settings != "" {
		if _, err := os.Stat(settings); err != nil {
			return nil, fmt.Errorf("failed to find settings file %s: %w", settings, err)
		}
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if c.Tools == nil {
		c.Tools = make(map[string]Tool)
	}
	for name, tool := range DefaultTools() {
		if _, ok := c.Tools[name]; !ok {
			c.Tools[name] = tool
		}
	}

	return c, nil
}

// ToolPath returns the path to the i-th executable of a registered tool.
func (c *Config) ToolPath(name string, i int) (string, error) {
	tool, ok := c.Tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if i < 0 || i >= len(tool.Exes) {
		return "", fmt.Errorf("%w: %s has no executable at index %d", ErrUnknownTool, name, i)
	}

	if tool.Path == "" {
		return tool.Exes[i], nil
	}
	return filepath.Join(tool.Path, tool.Exes[i]), nil
}

// Logs returns the stdout and stderr log paths for a task.
func (c *Config) Logs(name string) (stdout, stderr string) {
	base := filepath.Join(c.Paths.Logs, name)
	return base + ".stdout", base + ".stderr"
}

// Pfam is the path to the Pfam-A HMM library.
func (c *Config) Pfam() string {
	return filepath.Join(c.Paths.Databases, "pfam", "Pfam-A.hmm")
}

// NR is the path prefix of the NCBI non-redundant protein db.
func (c *Config) NR() string {
	return filepath.Join(c.Paths.Databases, "nr", "nr")
}

// SwissProt is the path prefix of the UniProt Swiss-Prot db.
func (c *Config) SwissProt() string {
	return filepath.Join(c.Paths.Databases, "uniprot_sprot", "uniprot_sprot")
}

// Uniref90 is the path prefix of the UniRef90 db.
func (c *Config) Uniref90() string {
	return filepath.Join(c.Paths.Databases, "uniref90", "uniref90")
}

// NogCategories is the path to the eggNOG functional categories table.
func (c *Config) NogCategories() string {
	return filepath.Join(c.Paths.Databases, "nog_categories")
}
