package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate every operation document against the bundled schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failures := operations.ValidateAll()
			for _, d := range operations.All() {
				if err, failed := failures[d.Name]; failed {
					fmt.Fprintf(out, "FAIL %s: %v\n", d.Name, err)
					continue
				}
				fmt.Fprintf(out, "ok   %s\n", d.Name)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d of %d documents are invalid", len(failures), len(operations.All()))
			}
			return nil
		},
	}
}
