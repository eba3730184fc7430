package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent search runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if runStore == nil {
		return errors.New("run store not configured")
	}

	runs, err := runStore.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("%s  %-24s  %-30s  %5d hit(s)  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Mode, run.Criteria, run.Hits, run.ReportPath)
	}
	return nil
}
