package cmd

import (
	"github.com/jjtimmons/pipekit/config"
	"github.com/jjtimmons/pipekit/internal/task"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// tasksCmd prints the tasks that prepare the reference databases.
var tasksCmd = &cobra.Command{
	Use:                        "tasks",
	Short:                      "Print the tasks that build the reference databases",
	RunE:                       runTasksCmd,
	SuggestionsMinimumDistance: 3,
	Long: `Build the commands that prepare reference databases for searching and
annotation, and print them as a list of tasks in dependency order.

For each protein database: a stitle table, a DIAMOND db and a BLAST+ db.
For each nucleotide database: a stitle table and a BLAST+ db.
For an "hmm" database: hmmpress of the Pfam-A library.

Databases come from the settings file ('databases:') and --fasta/--type.
Nothing is executed. Tool executables come from the settings' 'tools:' registry.`,
	Example: "  pipekit tasks -s settings.yaml --fasta uniprot_sprot.fasta.gz --name swissprot --type prot",
}

func runTasksCmd(cmd *cobra.Command, args []string) error {
	fasta, _ := cmd.Flags().GetString("fasta")
	name, _ := cmd.Flags().GetString("name")
	dbType, _ := cmd.Flags().GetString("type")
	logs, _ := cmd.Flags().GetBool("logs")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("out")

	dbs := append([]config.Database{}, conf.Databases...)
	if fasta != "" {
		dbs = append(dbs, config.Database{Name: name, Fasta: fasta, Type: dbType})
	}

	g, err := task.NewBuilder(conf).Plan(dbs, nil, logs)
	if err != nil {
		return err
	}
	logger.Debug("planned database tasks", zap.Int("databases", len(dbs)), zap.Int("tasks", g.Len()))

	return writeOutput(output, format, g.Order())
}

// set flags
func init() {
	tasksCmd.Flags().StringP("fasta", "f", "", "FASTA of an extra database to prepare")
	tasksCmd.Flags().StringP("name", "n", "", "name of the extra database (default: FASTA file name)")
	tasksCmd.Flags().StringP("type", "t", "prot", "type of the extra database: prot, nucl or hmm")
	tasksCmd.Flags().BoolP("logs", "l", true, "set stdout/stderr log paths on each task")
	tasksCmd.Flags().String("format", "yaml", "output format: json or yaml")
	tasksCmd.Flags().StringP("out", "o", "-", `output file name ("-" for stdout)`)

	RootCmd.AddCommand(tasksCmd)
}
