package metrics

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Role of a FastQC report in a sample.
type Role int

const (
	// Unpaired is a single-end read file, or a mate without its partner
	Unpaired Role = iota
	// Left is the first mate of a pair ("_1_" in the FastQC directory name)
	Left
	// Right is the second mate of a pair ("_2_" in the FastQC directory name)
	Right
)

func (r Role) String() string {
	switch r {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unpaired"
	}
}

// MarshalText writes the role by name in JSON and YAML output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LengthCount is a row of the Sequence Length Distribution module.
type LengthCount struct {
	Length string `json:"length" yaml:"length"`
	Count  string `json:"count" yaml:"count"`
}

// ReadStats are the statistics of a single read file.
type ReadStats struct {
	Path               string        `json:"path" yaml:"path"`
	Role               Role          `json:"role" yaml:"role"`
	Filename           string        `json:"filename" yaml:"filename"`
	TotalSequences     string        `json:"total_sequences" yaml:"total_sequences"`
	SequenceLength     string        `json:"sequence_length" yaml:"sequence_length"`
	LengthDistribution []LengthCount `json:"length_distribution" yaml:"length_distribution"`
}

// Sample is either one unpaired read file or a pair of them.
type Sample struct {
	Name  string      `json:"name" yaml:"name"`
	Reads []ReadStats `json:"reads" yaml:"reads"`
}

// Paired is true if the sample has both mates.
func (s *Sample) Paired() bool {
	return len(s.Reads) == 2
}

// FastQCReport holds every sample found in a directory of FastQC results.
type FastQCReport struct {
	Samples map[string]*Sample `json:"samples" yaml:"samples"`
}

// Names returns the sample names, sorted.
func (r *FastQCReport) Names() []string {
	names := make([]string, 0, len(r.Samples))
	for n := range r.Samples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Metrics flattens the report to "<sample>_num_seqs" and "<sample>_seq_length"
// entries, with "_1"/"_2" after the sample name for paired samples.
func (r *FastQCReport) Metrics() Metrics {
	if len(r.Samples) == 0 {
		return Metrics{"fastqc": "no fastqc information"}
	}

	m := Metrics{}
	for _, s := range r.Samples {
		for i, read := range s.Reads {
			prefix := s.Name
			if s.Paired() {
				prefix = fmt.Sprintf("%s_%d", s.Name, i+1)
			}
			m[prefix+"_num_seqs"] = read.TotalSequences
			m[prefix+"_seq_length"] = read.SequenceLength
		}
	}
	return m
}

// fastqcFile is a discovered fastqc_data.txt with its role.
type fastqcFile struct {
	path string
	// name of the enclosing "<reads>_fastqc" directory
	run  string
	role Role
}

func roleOf(run string) Role {
	switch {
	case strings.Contains(run, "_1_"):
		return Left
	case strings.Contains(run, "_2_"):
		return Right
	default:
		return Unpaired
	}
}

// FastQC reads the "<dir>/*_fastqc/<filename>" reports (usually fastqc_data.txt).
// Reports from directories with "_1_" and "_2_" in their names, and
// otherwise the same name, are a pair.
func FastQC(dir, filename string) (*FastQCReport, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_fastqc", filename))
	if err != nil {
		return nil, fmt.Errorf("bad report pattern %q: %w", filename, err)
	}
	sort.Strings(paths)

	files := make([]fastqcFile, 0, len(paths))
	byRun := make(map[string]int, len(paths))
	for _, p := range paths {
		run := filepath.Base(filepath.Dir(p))
		byRun[run] = len(files)
		files = append(files, fastqcFile{path: p, run: run, role: roleOf(run)})
	}

	report := &FastQCReport{Samples: make(map[string]*Sample)}
	used := make(map[int]bool, len(files))

	for i, f := range files {
		if f.role != Left {
			continue
		}
		j, ok := byRun[strings.ReplaceAll(f.run, "_1_", "_2_")]
		if !ok || files[j].role != Right {
			continue // no mate, read below as unpaired
		}

		left, err := readStats(f)
		if err != nil {
			return nil, err
		}
		right, err := readStats(files[j])
		if err != nil {
			return nil, err
		}

		name := pairedName(left.Filename)
		if err := report.add(&Sample{Name: name, Reads: []ReadStats{left, right}}); err != nil {
			return nil, err
		}
		used[i], used[j] = true, true
	}

	for i, f := range files {
		if used[i] {
			continue
		}
		f.role = Unpaired

		stats, err := readStats(f)
		if err != nil {
			return nil, err
		}

		name := unpairedName(stats.Filename)
		if err := report.add(&Sample{Name: name, Reads: []ReadStats{stats}}); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// add a sample. Two read files can't share a sample name.
func (r *FastQCReport) add(s *Sample) error {
	if prev, ok := r.Samples[s.Name]; ok {
		return fmt.Errorf("fastqc reports %s and %s are both sample %q", prev.Reads[0].Path, s.Reads[0].Path, s.Name)
	}
	r.Samples[s.Name] = s
	return nil
}

// pairedName is the read file name up to its first "_1".
func pairedName(filename string) string {
	if i := strings.Index(filename, "_1"); i > 0 {
		return filename[:i]
	}
	return filename
}

// unpairedName is the read file name up to its FASTA/FASTQ extension.
func unpairedName(filename string) string {
	cut := len(filename)
	for _, ext := range []string{".fa", ".fq"} {
		if i := strings.Index(filename, ext); i > 0 && i < cut {
			cut = i
		}
	}
	return filename[:cut]
}

func readStats(f fastqcFile) (ReadStats, error) {
	modules, err := readFastQCData(f.path)
	if err != nil {
		return ReadStats{}, err
	}

	basic, ok := modules["Basic Statistics"]
	if !ok {
		return ReadStats{}, &FormatError{Tool: "fastqc", Path: f.path, Reason: "no Basic Statistics module"}
	}
	measures := make(map[string]string, len(basic))
	for _, row := range basic {
		if len(row) >= 2 {
			measures[row[0]] = row[1]
		}
	}

	stats := ReadStats{
		Path:           f.path,
		Role:           f.role,
		Filename:       measures["Filename"],
		TotalSequences: measures["Total Sequences"],
		SequenceLength: measures["Sequence length"],
	}
	if stats.Filename == "" || stats.TotalSequences == "" {
		return ReadStats{}, &FormatError{Tool: "fastqc", Path: f.path, Reason: "Basic Statistics lacks Filename or Total Sequences"}
	}

	lengths, ok := modules["Sequence Length Distribution"]
	if !ok {
		return ReadStats{}, &FormatError{Tool: "fastqc", Path: f.path, Reason: "no Sequence Length Distribution module"}
	}
	for _, row := range lengths {
		if len(row) < 2 {
			return ReadStats{}, &FormatError{Tool: "fastqc", Path: f.path, Reason: "short Sequence Length Distribution row"}
		}
		stats.LengthDistribution = append(stats.LengthDistribution, LengthCount{Length: row[0], Count: row[1]})
	}

	return stats, nil
}

// readFastQCData splits a fastqc_data.txt file into its modules:
//
//	>>Basic Statistics	pass
//	#Measure	Value
//	Filename	reads_1.fq.gz
//	>>END_MODULE
//
// Column header rows (starting with "#") are dropped.
func readFastQCData(path string) (map[string][][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	defer f.Close()

	modules := make(map[string][][]string)
	module := ""
	inModule := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == ">>END_MODULE":
			if !inModule {
				return nil, &FormatError{Tool: "fastqc", Path: path, Reason: ">>END_MODULE outside of a module"}
			}
			inModule = false
		case strings.HasPrefix(line, ">>"):
			if inModule {
				return nil, &FormatError{Tool: "fastqc", Path: path, Reason: fmt.Sprintf("module %q isn't closed", module)}
			}
			module, _, _ = strings.Cut(line[2:], "\t")
			modules[module] = [][]string{}
			inModule = true
		case !inModule, line == "", strings.HasPrefix(line, "#"):
		default:
			modules[module] = append(modules[module], strings.Split(line, "\t"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", path, err)
	}
	if inModule {
		return nil, &FormatError{Tool: "fastqc", Path: path, Reason: fmt.Sprintf("module %q isn't closed", module)}
	}

	return modules, nil
}
