package metrics

import "regexp"

var detonateScore = regexp.MustCompile(`Score\s+([-+]?(?:\d*\.\d+|\d+)(?:[eE][-+]?\d+)?)`)

// DETONATE extracts the RSEM-EVAL score from a DETONATE .score file.
func DETONATE(dir, pattern string) (Metrics, error) {
	path, report, found, err := readFirst(dir, pattern)
	if err != nil {
		return nil, err
	}
	if !found {
		return Metrics{"detonate": "no detonate information"}, nil
	}

	match := detonateScore.FindStringSubmatch(report)
	if match == nil {
		return nil, &FormatError{Tool: "detonate", Path: path, Reason: "no Score line"}
	}

	return Metrics{"detonate": match[1]}, nil
}
