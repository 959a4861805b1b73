package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	mongoclient "github.com/zatekoja/projectapi-e2e/internal/infrastructure/clients/mongo"
	"github.com/zatekoja/projectapi-e2e/internal/readiness"
	"github.com/zatekoja/projectapi-e2e/pkg/config"
)

func newCheckCmd() *cobra.Command {
	var skipMongo bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Wait until the GraphQL API and the datastore answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			c := client.New(cfg.API.Endpoint, cfg.API.Timeout)

			var pinger readiness.Pinger
			if !skipMongo && cfg.Suite.Oracle == config.OracleMongo {
				mc, err := mongoclient.NewClient(ctx, &cfg.Mongo)
				if err != nil {
					return err
				}
				defer func() { _ = mc.Close(ctx) }()
				pinger = mc
			}

			if err := readiness.WaitAll(ctx, cfg.Suite.ReadinessTimeout, c, pinger); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api       ok  %s\n", cfg.API.Endpoint)
			if pinger != nil {
				fmt.Fprintf(out, "datastore ok  %s/%s\n", cfg.Mongo.Database, cfg.Mongo.ProjectCollection)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMongo, "skip-mongo", false, "Only check the GraphQL API")
	return cmd
}
