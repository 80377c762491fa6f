package metrics

import "regexp"

// The captures are the #Prots column, the count of CEGs found. The
// %Completeness column that follows isn't reported.
var (
	cegmaComplete = regexp.MustCompile(`Complete\s+([0-9]+)\s`)
	cegmaPartial  = regexp.MustCompile(`Partial\s+([0-9]+)\s`)
)

// CEGMA extracts the complete and partial counts from a CEGMA completeness report.
func CEGMA(dir, pattern string) (Metrics, error) {
	path, report, found, err := readFirst(dir, pattern)
	if err != nil {
		return nil, err
	}
	if !found {
		return Metrics{"cegma": "no cegma information"}, nil
	}

	complete := cegmaComplete.FindStringSubmatch(report)
	if complete == nil {
		return nil, &FormatError{Tool: "cegma", Path: path, Reason: "no Complete line"}
	}
	partial := cegmaPartial.FindStringSubmatch(report)
	if partial == nil {
		return nil, &FormatError{Tool: "cegma", Path: path, Reason: "no Partial line"}
	}

	return Metrics{
		"cegma_%_complete": complete[1],
		"cegma_%_partial":  partial[1],
	}, nil
}
