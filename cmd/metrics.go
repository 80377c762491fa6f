package cmd

import (
	"fmt"

	"github.com/jjtimmons/pipekit/config"
	"github.com/jjtimmons/pipekit/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultPatterns are the report file names each tool writes.
var defaultPatterns = map[string]string{
	"cegma":               "*.completeness_report",
	"busco":               "short_summary_*",
	"detonate":            "*.score",
	"transrate":           "assemblies.csv",
	"transrate-readcount": "*readcount*",
	"fastqc":              "fastqc_data.txt",
}

var toolHelp = map[string]string{
	"cegma":               "CEGMA completeness report: complete and partial CEG counts",
	"busco":               "BUSCO short summary: % complete, duplicated, fragmented and missing",
	"detonate":            "DETONATE RSEM-EVAL score",
	"transrate":           "Transrate assemblies.csv: every column",
	"transrate-readcount": "Transrate read count file",
	"fastqc":              "FastQC reports in <dir>/*_fastqc/: sequence counts per sample",
}

// metricsCmd is the parent of the per-tool report parsers.
var metricsCmd = &cobra.Command{
	Use:                        "metrics",
	Short:                      "Extract metrics from assembly quality reports",
	SuggestionsMinimumDistance: 2,
	Long: `Extract summary metrics from the reports of assembly quality tools.

If no report matches in the directory, a single "no <tool> information"
entry is written instead. If a report doesn't match the tool's format,
the command fails.`,
	Aliases: []string{"qc"},
}

// collectCmd runs every metric source in the settings file.
var collectCmd = &cobra.Command{
	Use:                        "collect",
	Short:                      "Extract metrics from every report listed in the settings file",
	RunE:                       runCollectCmd,
	SuggestionsMinimumDistance: 2,
	Example: `  # settings.yaml
  metrics:
    - tool: busco
      dir: run_busco_metazoa
      pattern: short_summary_*

  pipekit metrics collect -s settings.yaml`,
}

func runCollectCmd(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("out")

	if len(conf.Metrics) == 0 {
		return fmt.Errorf("no metric sources, add a 'metrics:' list to the settings file")
	}

	sources := append([]config.MetricSource{}, conf.Metrics...)
	for i := range sources {
		if sources[i].Pattern == "" {
			sources[i].Pattern = defaultPatterns[sources[i].Tool]
		}
	}

	m, err := metrics.Collect(cmd.Context(), sources, logger)
	if err != nil {
		return err
	}
	logger.Info("collected metrics", zap.Int("sources", len(sources)), zap.Int("metrics", len(m)))

	return writeOutput(output, format, m)
}

// toolCmd makes the subcommand that runs one tool's extractor.
func toolCmd(tool string) *cobra.Command {
	c := &cobra.Command{
		Use:                        tool + " [dir]",
		Short:                      toolHelp[tool],
		Args:                       cobra.MaximumNArgs(1),
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if len(args) > 0 {
				dir = args[0]
			}
			pattern, _ := cmd.Flags().GetString("pattern")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("out")

			if tool == "fastqc" {
				if samples, _ := cmd.Flags().GetBool("samples"); samples {
					report, err := metrics.FastQC(dir, pattern)
					if err != nil {
						return err
					}
					return writeOutput(output, format, report)
				}
			}

			m, err := metrics.Extract(tool, dir, pattern)
			if err != nil {
				return err
			}
			logger.Debug("extracted metrics", zap.String("tool", tool), zap.String("dir", dir), zap.Int("metrics", len(m)))
			return writeOutput(output, format, m)
		},
	}

	c.Flags().StringP("dir", "d", ".", "directory with the report")
	c.Flags().StringP("pattern", "p", defaultPatterns[tool], "glob pattern of the report within the directory")
	c.Flags().String("format", "json", "output format: json or yaml")
	c.Flags().StringP("out", "o", "-", `output file name ("-" for stdout)`)
	if tool == "fastqc" {
		c.Flags().Bool("samples", false, "write per-sample statistics, with sequence length distributions")
	}
	return c
}

// set flags
func init() {
	collectCmd.Flags().String("format", "json", "output format: json or yaml")
	collectCmd.Flags().StringP("out", "o", "-", `output file name ("-" for stdout)`)
	metricsCmd.AddCommand(collectCmd)

	for _, tool := range metrics.Tools() {
		metricsCmd.AddCommand(toolCmd(tool))
	}

	RootCmd.AddCommand(metricsCmd)
}
