package cmd

import (
	"fmt"

	"github.com/jjtimmons/pipekit/internal/stitle"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stitleCmd writes the id to description table of a FASTA reference db.
var stitleCmd = &cobra.Command{
	Use:                        "stitle",
	Short:                      "Write an id to description (stitle) table from a FASTA file",
	RunE:                       runStitleCmd,
	SuggestionsMinimumDistance: 3,
	Long: `Read the headers of a (optionally gzipped) FASTA file and write
"id<TAB>description" for each record: the lookup table for 'pipekit annotate'.`,
	Example: "  pipekit stitle --fasta uniprot_sprot.fasta.gz > uniprot_sprot.stitle",
}

func runStitleCmd(cmd *cobra.Command, args []string) error {
	fasta, _ := cmd.Flags().GetString("fasta")
	output, _ := cmd.Flags().GetString("out")

	out, err := xopen.Wopen(output)
	if err != nil {
		return fmt.Errorf("failed to open output %s: %w", output, err)
	}

	count, err := stitle.Write(out, fasta)
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write output %s: %w", output, err)
	}
	logger.Info("wrote stitle table", zap.String("fasta", fasta), zap.Int("records", count))
	return nil
}

// set flags
func init() {
	stitleCmd.Flags().StringP("fasta", "f", "", "FASTA file of the reference db")
	stitleCmd.Flags().StringP("out", "o", "-", `output file name ("-" for stdout, ".gz" suffix to compress)`)
	stitleCmd.MarkFlagRequired("fasta")

	RootCmd.AddCommand(stitleCmd)
}
