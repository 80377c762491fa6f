package metrics

import (
	"path/filepath"
	"regexp"
	"strings"
)

// buscoSummary matches BUSCO's one line summary, eg "C:94.1%[D:40.0%],F:1.8%,M:3.5%,n:843".
// Newer BUSCO releases add single copy BUSCOs: "C:94.1%[S:54.1%,D:40.0%],...".
var buscoSummary = regexp.MustCompile(
	`C:(?P<complete>\d+\.?\d*)%\[(?:S:(?P<single>\d+\.?\d*)%,)?D:(?P<duplicated>\d+\.?\d*)%\],` +
		`F:(?P<fragmented>\d+\.?\d*)%,M:(?P<missing>\d+\.?\d*)%,n:(?P<searched>\d+)`)

// buscoDB is the metric prefix for a BUSCO run. Runs are in directories
// named "run_busco_<DBNAME>", so it's "busco_" + whatever comes after the last "_".
func buscoDB(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	base := filepath.Base(filepath.Clean(dir))
	if i := strings.LastIndex(base, "_"); i >= 0 {
		base = base[i+1:]
	}
	return "busco_" + base
}

// BUSCO extracts the completeness percentages from a short_summary_busco_<DBNAME> file.
func BUSCO(dir, pattern string) (Metrics, error) {
	db := buscoDB(dir)

	path, report, found, err := readFirst(dir, pattern)
	if err != nil {
		return nil, err
	}
	if !found {
		return Metrics{db: "no busco information from " + db}, nil
	}

	match := buscoSummary.FindStringSubmatch(report)
	if match == nil {
		return nil, &FormatError{Tool: "busco", Path: path, Reason: "no C:[D:],F:,M:,n: summary line"}
	}
	group := func(name string) string {
		return match[buscoSummary.SubexpIndex(name)]
	}

	m := Metrics{
		db + "_%_complete":      group("complete"),
		db + "_%_duplicated":    group("duplicated"),
		db + "_%_fragmented":    group("fragmented"),
		db + "_%_missing":       group("missing"),
		db + "_number_searched": group("searched"),
	}
	if single := group("single"); single != "" {
		m[db+"_%_single"] = single
	}
	return m, nil
}
