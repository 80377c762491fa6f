package task

import (
	"fmt"
	"os/exec"

	"github.com/biogo/external"
	"github.com/kballard/go-shellquote"
)

// makeBlastDB is makeblastdb from BLAST+.
// https://www.ncbi.nlm.nih.gov/books/NBK279688/
type makeBlastDB struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}makeblastdb{{end}}"`

	In     string `buildarg:"{{with .}}-in{{split}}{{.}}{{end}}"`     // -in <s>
	DBType string `buildarg:"{{with .}}-dbtype{{split}}{{.}}{{end}}"` // -dbtype <s>
	Title  string `buildarg:"{{with .}}-title{{split}}{{.}}{{end}}"`  // -title <s>
	Out    string `buildarg:"{{with .}}-out{{split}}{{.}}{{end}}"`    // -out <s>
}

func (m makeBlastDB) BuildCommand() (*exec.Cmd, error) { return buildCommand(m) }

// diamondMakeDB is `diamond makedb`.
type diamondMakeDB struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}diamond{{end}}{{split}}makedb"`

	In string `buildarg:"{{with .}}--in{{split}}{{.}}{{end}}"` // --in <s>
	DB string `buildarg:"{{with .}}--db{{split}}{{.}}{{end}}"` // --db <s>
}

func (d diamondMakeDB) BuildCommand() (*exec.Cmd, error) { return buildCommand(d) }

// hmmPress is hmmpress from HMMER.
type hmmPress struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}hmmpress{{end}}"`

	Force  bool   `buildarg:"{{if .}}-f{{end}}"` // -f
	Source string `buildarg:"{{.}}"`              // <hmmfile>
}

func (h hmmPress) BuildCommand() (*exec.Cmd, error) { return buildCommand(h) }

// gunzip decompresses In.
type gunzip struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}gunzip{{end}}"`

	Stdout bool   `buildarg:"{{if .}}-c{{end}}"` // -c
	In     string `buildarg:"{{.}}"`              // <file>
}

func (g gunzip) BuildCommand() (*exec.Cmd, error) { return buildCommand(g) }

// stitleCmd is `pipekit stitle`.
type stitleCmd struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}pipekit{{end}}{{split}}stitle"`

	Fasta string `buildarg:"{{with .}}--fasta{{split}}{{.}}{{end}}"` // --fasta <s>
}

func (s stitleCmd) BuildCommand() (*exec.Cmd, error) { return buildCommand(s) }

func buildCommand(c external.CommandBuilder) (*exec.Cmd, error) {
	cl, err := external.Build(c)
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// commandLine renders the command as a shell-quoted string.
func commandLine(c external.CommandBuilder) (string, error) {
	cl, err := external.Build(c)
	if err != nil {
		return "", fmt.Errorf("failed to build command line: %w", err)
	}
	return shellquote.Join(cl...), nil
}

func quote(s string) string {
	return shellquote.Join(s)
}
