package cmd

import (
	"fmt"

	"github.com/jjtimmons/pipekit/internal/annotate"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

// annotateCmd is for adding descriptions from a reference lookup table to BLAST hits.
var annotateCmd = &cobra.Command{
	Use:                        "annotate",
	Short:                      "Add reference descriptions (stitle) to tab-separated BLAST hits",
	RunE:                       runAnnotateCmd,
	SuggestionsMinimumDistance: 3,
	Long: `Join a tab-separated BLAST table (-outfmt 6) with a lookup table of
reference descriptions, eg the output of 'pipekit stitle'.

Every hit is written in its input order. Hits whose subject id (column 2)
is the first column of a lookup row have the rest of that row appended.
Hits without a match are written unchanged. The lookup table is streamed,
so it can be far larger than memory. Either file may be gzipped.`,
	Example: "  pipekit annotate -b trinity.x.swissprot.blastx --db2Name uniprot_sprot.stitle > annotated.tsv",
}

func runAnnotateCmd(cmd *cobra.Command, args []string) error {
	hits, _ := cmd.Flags().GetString("blast")
	lookup, _ := cmd.Flags().GetString("db2Name")
	output, _ := cmd.Flags().GetString("out")
	compact, _ := cmd.Flags().GetBool("compact")
	hitKey, _ := cmd.Flags().GetInt("hit-key")
	lookupKey, _ := cmd.Flags().GetInt("lookup-key")

	if hitKey < 1 || lookupKey < 1 {
		return fmt.Errorf("key columns are 1-based, got --hit-key=%d --lookup-key=%d", hitKey, lookupKey)
	}

	out, err := xopen.Wopen(output)
	if err != nil {
		return fmt.Errorf("failed to open output %s: %w", output, err)
	}

	opts := annotate.Options{
		HitKey:    hitKey - 1,
		LookupKey: lookupKey - 1,
		Compact:   compact,
	}
	if err := annotate.Files(hits, lookup, out, opts, logger); err != nil {
		out.Close()
		return err
	}

	// Close flushes the buffer and writes the gzip footer
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output %s: %w", output, err)
	}
	return nil
}

// set flags
func init() {
	annotateCmd.Flags().StringP("blast", "b", "", "tab-separated BLAST hits")
	annotateCmd.Flags().String("db2Name", "", "tab-separated lookup of reference id to full name (eg nr or swissprot)")
	annotateCmd.Flags().StringP("out", "o", "-", `output file name ("-" for stdout, ".gz" suffix to compress)`)
	annotateCmd.Flags().BoolP("compact", "c", false, "don't write a blank line after each row")
	annotateCmd.Flags().Int("hit-key", 2, "1-based column of the subject id in the BLAST hits")
	annotateCmd.Flags().Int("lookup-key", 1, "1-based column of the id in the lookup table")
	annotateCmd.MarkFlagRequired("blast")
	annotateCmd.MarkFlagRequired("db2Name")

	RootCmd.AddCommand(annotateCmd)
}
