package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shenwei356/xopen"
	"gopkg.in/yaml.v3"
)

// writeOutput encodes v as JSON or YAML to the file at path ("-" for stdout).
// Map keys are sorted by both encoders, so the same value is always
// written the same way.
func writeOutput(path, format string, v interface{}) error {
	out, err := xopen.Wopen(path)
	if err != nil {
		return fmt.Errorf("failed to open output %s: %w", path, err)
	}

	if err := encode(out, format, v); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize output: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected json or yaml", format)
	}
}
