package pwlab

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/audit"
	"github.com/Razmik-Kutinava/password-entropy-lab/internal/report"
)

var (
	flagHistoryLimit  int
	flagHistoryJSON   bool
	flagHistoryDelete int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or prune the assessment audit log",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "show at most N records (0 = all)")
	cmd.Flags().BoolVar(&flagHistoryJSON, "json", false, "emit JSON")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the record at this index (as listed) and exit")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cliFlags{})
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(s.AuditPath)

	if flagHistoryDelete >= 0 {
		if err := log.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d\n", flagHistoryDelete)
		return err
	}

	records, err := log.LoadHistory()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if flagHistoryJSON {
		if records == nil {
			records = []audit.Record{}
		}
		return report.WriteJSON(cmd.OutOrStdout(), records, report.JSONOptions{})
	}
	noColor := s.NoColor || !writerIsTerminal(cmd.OutOrStdout())
	return report.PrintHistory(cmd.OutOrStdout(), records, report.PrintOptions{NoColor: noColor})
}
