package metrics

import (
	"encoding/csv"
	"io"
	"strings"
)

// Transrate zips the header and value rows of Transrate's assemblies.csv.
// Columns past the end of the shorter row are dropped.
func Transrate(dir, pattern string) (Metrics, error) {
	path, report, found, err := readFirst(dir, pattern)
	if err != nil {
		return nil, err
	}
	if !found {
		return Metrics{"transrate": "no transrate information"}, nil
	}

	r := csv.NewReader(strings.NewReader(report))
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, &FormatError{Tool: "transrate", Path: path, Reason: "no header row: " + reason(err)}
	}
	values, err := r.Read()
	if err != nil {
		return nil, &FormatError{Tool: "transrate", Path: path, Reason: "no value row: " + reason(err)}
	}

	m := make(Metrics, len(headers))
	for i, h := range headers {
		if i >= len(values) {
			break
		}
		m[h] = values[i]
	}
	return m, nil
}

// TransrateReadCount is the first line of the read count file.
func TransrateReadCount(dir, pattern string) (Metrics, error) {
	_, report, found, err := readFirst(dir, pattern)
	if err != nil {
		return nil, err
	}
	if !found {
		return Metrics{"Transrate_readCount": "no transrate readCount information"}, nil
	}

	line, _, _ := strings.Cut(report, "\n")
	return Metrics{"Transrate_readCount": strings.TrimRight(line, " \t\r")}, nil
}

func reason(err error) string {
	if err == io.EOF {
		return "file ends early"
	}
	return err.Error()
}
