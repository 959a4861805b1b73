package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/e2e/harness"
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List run ids known to the ledger with their entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			runs, err := l.Runs(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, run := range runs {
				entries, err := l.Entries(ctx, run)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%d\n", run, len(entries))
			}
			return nil
		},
	}
}
