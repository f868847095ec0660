package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/MGTheTrain/book-organiser/internal/domain/summaries"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func runOnceCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	poller, err := env.poller()
	if err != nil {
		return err
	}

	completed, err := poller.RunOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("summary run failed: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Completed %d summaries\n", completed)
	return err
}

func pendingCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	pending, err := env.summaryRepo.ListPending(cmd.Context())
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No pending summaries")
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BOOK\tTITLE\tMISSING")
	for _, s := range pending {
		title := ""
		if s.Book != nil {
			title = s.Book.Title
		}
		missing := lo.Map(s.MissingFields(), func(f summaries.Field, _ int) string { return string(f) })
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.BookID, title, strings.Join(missing, ","))
	}
	return w.Flush()
}

func initSummaryCommands(rootCmd *cobra.Command) {
	var summariesCmd = &cobra.Command{
		Use:   "summaries",
		Short: "Inspect and generate AI summaries",
	}

	summariesCmd.AddCommand(&cobra.Command{
		Use:   "run-once",
		Short: "Fill in pending summaries with a single poller pass",
		Args:  cobra.NoArgs,
		RunE:  runOnceCmd,
	})

	summariesCmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "List summaries waiting for generation",
		Args:  cobra.NoArgs,
		RunE:  pendingCmd,
	})

	rootCmd.AddCommand(summariesCmd)
}
