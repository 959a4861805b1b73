package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/cleanup"
	"github.com/zatekoja/projectapi-e2e/internal/e2e/harness"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
)

func newCleanupCmd() *cobra.Command {
	var (
		runID string
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete the entities recorded in the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (runID == "") == !all {
				return errors.New("exactly one of --run or --all is required")
			}
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			l, rc, err := harness.OpenLedger(ctx, cfg)
			if err != nil {
				return err
			}
			if rc != nil {
				defer func() { _ = rc.Close() }()
			}

			sweeper := cleanup.NewSweeper(client.New(cfg.API.Endpoint, cfg.API.Timeout), l)
			summaries := map[string]*cleanup.Summary{}
			if all {
				summaries, err = sweeper.SweepAll(ctx)
			} else {
				var s *cleanup.Summary
				s, err = sweeper.Sweep(ctx, runID)
				summaries[runID] = s
			}
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), summaries)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "Run id to sweep")
	cmd.Flags().BoolVar(&all, "all", false, "Sweep every run in the ledger")
	return cmd
}

// report prints one line per run and fails when anything was left behind
func report(out io.Writer, summaries map[string]*cleanup.Summary) error {
	runs := make([]string, 0, len(summaries))
	for run := range summaries {
		runs = append(runs, run)
	}
	sort.Strings(runs)

	failed := 0
	for _, run := range runs {
		s := summaries[run]
		fmt.Fprintf(out, "run %s: deleted %d, failed %d\n", run, len(s.Deleted), len(s.Failed))
		for _, f := range s.Failed {
			fmt.Fprintf(out, "  %s %s: %v\n", f.Entry.Kind, f.Entry.ID, f.Err)
		}
		failed += len(s.Failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d entities could not be deleted", failed)
	}
	return nil
}
