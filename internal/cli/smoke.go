package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/e2e/harness"
	"github.com/zatekoja/projectapi-e2e/internal/scenario"
)

func newSmokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Create a template, compare the API with the oracle, then delete it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			h, err := harness.New(ctx, cfg)
			if err != nil {
				return err
			}
			err = runSmoke(ctx, h, cmd.OutOrStdout())
			return errors.Join(err, h.Close(ctx))
		},
	}
}

// runSmoke exercises create, read through both paths and delete once
func runSmoke(ctx context.Context, h *harness.Harness, out io.Writer) error {
	created, err := h.Fixtures.NewProjectTemplate(ctx)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	fmt.Fprintf(out, "created   %s %q\n", created.ID, created.Entity.ProjectInfo.Name)

	fetched, err := h.Client.ProjectTemplate(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("fetch template: %w", err)
	}
	stored, err := h.Oracle.ProjectTemplate(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("read template from oracle: %w", err)
	}

	if err := errors.Join(
		scenario.SameProjectInfo(stored.ProjectInfo, fetched.ProjectInfo),
		scenario.SameGlobalVars(stored.GlobalVars, fetched.GlobalVars),
		scenario.SamePages(stored.Pages, fetched.Pages),
	); err != nil {
		return fmt.Errorf("api and oracle disagree on %s: %w", created.ID, err)
	}
	fmt.Fprintf(out, "compared  %s api=oracle\n", created.ID)

	if _, err := h.Client.DeleteProjectTemplate(ctx, created.ID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if err := h.Ledger.Forget(ctx, h.Fixtures.RunID(), created.ID); err != nil {
		return fmt.Errorf("forget template: %w", err)
	}
	fmt.Fprintf(out, "deleted   %s\n", created.ID)
	return nil
}
