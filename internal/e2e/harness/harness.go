// Package harness wires the dependencies every e2e suite shares.
package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/zatekoja/projectapi-e2e/internal/cleanup"
	"github.com/zatekoja/projectapi-e2e/internal/fixtures"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	mongoclient "github.com/zatekoja/projectapi-e2e/internal/infrastructure/clients/mongo"
	redisclient "github.com/zatekoja/projectapi-e2e/internal/infrastructure/clients/redis"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	"github.com/zatekoja/projectapi-e2e/internal/ledger"
	"github.com/zatekoja/projectapi-e2e/internal/oracle"
	"github.com/zatekoja/projectapi-e2e/internal/readiness"
	"github.com/zatekoja/projectapi-e2e/pkg/config"
	"github.com/zatekoja/projectapi-e2e/pkg/retry"
	"github.com/zatekoja/projectapi-e2e/pkg/secrets"
)

// Harness holds the shared clients of one test process
type Harness struct {
	Config   *config.Config
	Client   *client.Client
	Oracle   oracle.Oracle
	Ledger   ledger.Ledger
	Fixtures *fixtures.Fixtures
	Metrics  *observability.Metrics

	mongo        *mongoclient.Client
	redis        *redisclient.Client
	otelShutdown func(context.Context) error
}

// LoadConfig applies Vault secrets when enabled, then reads the environment
// and the given .env files.
func LoadConfig(ctx context.Context, envFiles ...string) (*config.Config, error) {
	result, err := secrets.ApplyVaultSecrets(ctx, secrets.LoadVaultConfigFromEnv(""))
	if err != nil {
		return nil, fmt.Errorf("failed to load vault secrets: %w", err)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if result.Enabled {
		observability.GetLogger().Info().
			Str("path", result.Path).
			Int("loaded", result.Loaded).
			Int("skipped", result.Skipped).
			Msg("vault secrets applied")
	}
	return cfg, nil
}

// New wires logger, tracing, the GraphQL client, the datastore, the oracle,
// the ledger and the fixtures, waiting for the API and the datastore first.
func New(ctx context.Context, cfg *config.Config) (*Harness, error) {
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Log.Env, cfg.Log.Level)
	logger := observability.GetLogger()

	h := &Harness{Config: cfg}

	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to set up telemetry: %w", err)
		}
		h.otelShutdown = shutdown

		metrics, err := observability.InitMetrics()
		if err != nil {
			_ = h.Close(ctx)
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
		h.Metrics = metrics
	}

	h.Client = client.New(cfg.API.Endpoint, cfg.API.Timeout, client.WithMetrics(h.Metrics))

	var pinger readiness.Pinger
	if cfg.Suite.Oracle == config.OracleMongo {
		mc, err := connectMongo(ctx, cfg)
		if err != nil {
			_ = h.Close(ctx)
			return nil, err
		}
		h.mongo = mc
		pinger = mc
	}

	if err := readiness.WaitAll(ctx, cfg.Suite.ReadinessTimeout, h.Client, pinger); err != nil {
		_ = h.Close(ctx)
		return nil, err
	}

	switch cfg.Suite.Oracle {
	case config.OracleMongo:
		h.Oracle = oracle.NewMongoOracleFromClient(h.mongo, h.Metrics)
	default:
		h.Oracle = oracle.NewAPIOracle(h.Client, h.Metrics)
	}

	l, rc, err := OpenLedger(ctx, cfg)
	if err != nil {
		_ = h.Close(ctx)
		return nil, err
	}
	h.Ledger, h.redis = l, rc

	h.Fixtures = fixtures.New(h.Client, h.Ledger, cfg.Suite.RunID)

	logger.Info().
		Str("endpoint", cfg.API.Endpoint).
		Str("oracle", cfg.Suite.Oracle).
		Str("ledger", cfg.Ledger.Backend).
		Str("run_id", cfg.Suite.RunID).
		Msg("harness ready")
	return h, nil
}

// OpenLedger builds the configured ledger. The Redis client is nil for the
// memory backend; callers close it when set.
func OpenLedger(ctx context.Context, cfg *config.Config) (ledger.Ledger, *redisclient.Client, error) {
	if cfg.Ledger.Backend != config.LedgerRedis {
		return ledger.NewMemory(), nil, nil
	}
	rc, err := redisclient.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return ledger.NewRedis(rc, cfg.Ledger.Prefix), rc, nil
}

// connectMongo dials the datastore, retrying until the readiness timeout
func connectMongo(ctx context.Context, cfg *config.Config) (*mongoclient.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.Suite.ReadinessTimeout)
	defer cancel()

	var mc *mongoclient.Client
	err := readiness.WaitForMongo(dialCtx, readiness.PingerFunc(func(ctx context.Context) error {
		c, err := mongoclient.NewClient(ctx, &cfg.Mongo)
		if err != nil {
			return err
		}
		mc = c
		return nil
	}), retry.UntilTimeout(cfg.Suite.ReadinessTimeout))
	if err != nil {
		return nil, err
	}
	return mc, nil
}

// Sweep deletes what this run created
func (h *Harness) Sweep(ctx context.Context) (*cleanup.Summary, error) {
	return cleanup.NewSweeper(h.Client, h.Ledger).Sweep(ctx, h.Config.Suite.RunID)
}

// Close sweeps the run when cleanup is enabled, then releases every client
func (h *Harness) Close(ctx context.Context) error {
	var errs []error

	if h.Config.Suite.Cleanup && h.Ledger != nil && h.Client != nil {
		summary, err := h.Sweep(ctx)
		if err != nil {
			errs = append(errs, err)
		} else if len(summary.Failed) > 0 {
			errs = append(errs, fmt.Errorf("cleanup left %d entities", len(summary.Failed)))
		}
	}
	if h.mongo != nil {
		if err := h.mongo.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close MongoDB: %w", err))
		}
	}
	if h.redis != nil {
		if err := h.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}
	if h.otelShutdown != nil {
		if err := h.otelShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down telemetry: %w", err))
		}
	}
	return errors.Join(errs...)
}

// FromEnv loads configuration from the environment, a local .env and the
// repository root .env, then wires a harness. Suites call it from BeforeSuite.
func FromEnv(ctx context.Context) (*Harness, error) {
	cfg, err := LoadConfig(ctx, ".env", "../../../.env")
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}
