// Package task builds the shell commands that prepare reference databases
// (BLAST+, DIAMOND, HMMER) and wraps them in declarative Task descriptors.
// Nothing here executes a command: running and ordering the tasks belongs
// to whichever scheduler consumes the Graph.
package task

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jjtimmons/pipekit/config"
)

// Task is a single node of work: a shell command, the names of the tasks
// it depends on and the files it creates. Tasks are not mutated after a
// Builder returns them.
type Task struct {
	// Name is the unique id of the task in a Graph
	Name string `json:"name" yaml:"name"`

	// Command is the shell command line
	Command string `json:"command" yaml:"command"`

	// Dependencies are the names of upstream tasks
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Targets are the output files the command creates
	Targets []string `json:"targets" yaml:"targets"`

	// Stdout and Stderr are optional log file paths
	Stdout string `json:"stdout,omitempty" yaml:"stdout,omitempty"`
	Stderr string `json:"stderr,omitempty" yaml:"stderr,omitempty"`
}

// Builder creates Tasks against a config's paths and tool registry.
type Builder struct {
	conf *config.Config
}

// NewBuilder returns a Builder for the config.
func NewBuilder(conf *config.Config) *Builder {
	return &Builder{conf: conf}
}

// DB2Stitle extracts the id to description table of a FASTA reference db,
// for annotating BLAST hits.
func (b *Builder) DB2Stitle(db string, deps []*Task, logs bool) (*Task, error) {
	base := filepath.Base(db)
	target := filepath.Join(b.conf.Paths.Databases, base+".stitle")

	exe, err := b.conf.ToolPath("pipekit", 0)
	if err != nil {
		return nil, err
	}

	cmd, err := commandLine(stitleCmd{Cmd: exe, Fasta: db})
	if err != nil {
		return nil, err
	}

	return b.newTask("db2stitle_"+base, cmd+" > "+quote(target), []string{target}, deps, logs), nil
}

// BlastDB creates a BLAST+ database from a gzipped FASTA file.
func (b *Builder) BlastDB(pathDB, outDir, dbType string, deps []*Task, logs bool) (*Task, error) {
	var exts []string
	switch dbType {
	case "prot":
		exts = []string{".pin", ".phr", ".psq"}
	case "nucl":
		exts = []string{".nin", ".nhr", ".nsq"}
	default:
		return nil, fmt.Errorf("unknown BLAST dbtype %q, expected prot or nucl", dbType)
	}

	exe, err := b.conf.ToolPath("blast", 0)
	if err != nil {
		return nil, err
	}

	// title doesn't change makeblastdb's output names, -out does
	title := strings.SplitN(filepath.Base(pathDB), ".", 2)[0]

	gz, err := commandLine(gunzip{Stdout: true, In: pathDB})
	if err != nil {
		return nil, err
	}
	makeDB, err := commandLine(makeBlastDB{Cmd: exe, In: "-", DBType: dbType, Title: title, Out: outDir})
	if err != nil {
		return nil, err
	}

	targets := make([]string, 0, len(exts))
	for _, ext := range exts {
		targets = append(targets, outDir+ext)
	}

	return b.newTask("build_blastplus_db_"+title, gz+" | "+makeDB, targets, deps, logs), nil
}

// Diamond creates a DIAMOND database from a FASTA file.
func (b *Builder) Diamond(dbFasta, outPath string, deps []*Task, logs bool) (*Task, error) {
	exe, err := b.conf.ToolPath("diamond", 0)
	if err != nil {
		return nil, err
	}

	cmd, err := commandLine(diamondMakeDB{Cmd: exe, In: dbFasta, DB: outPath})
	if err != nil {
		return nil, err
	}

	return b.newTask("build_diamond_"+filepath.Base(outPath), cmd, []string{outPath + ".dmnd"}, deps, logs), nil
}

// Pfam indexes the Pfam-A HMM library with hmmpress.
func (b *Builder) Pfam(source string, deps []*Task, logs bool) (*Task, error) {
	exe, err := b.conf.ToolPath("hmmer", 1)
	if err != nil {
		return nil, err
	}

	press, err := commandLine(hmmPress{Cmd: exe, Force: true, Source: source})
	if err != nil {
		return nil, err
	}

	cmd := fmt.Sprintf("cd %s ; %s;", quote(b.conf.Paths.Databases), press)
	pfam := b.conf.Pfam()
	targets := []string{pfam + ".h3f", pfam + ".h3i", pfam + ".h3m", pfam + ".h3p"}

	return b.newTask("hmmpress", cmd, targets, deps, logs), nil
}

// newTask wraps a command. Log paths are only set if logs is true.
func (b *Builder) newTask(name, cmd string, targets []string, deps []*Task, logs bool) *Task {
	t := &Task{
		Name:    name,
		Command: cmd,
		Targets: targets,
	}

	for _, dep := range deps {
		t.Dependencies = append(t.Dependencies, dep.Name)
	}

	if logs {
		t.Stdout, t.Stderr = b.conf.Logs(name)
	}

	return t
}
