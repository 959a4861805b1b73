// Package readiness blocks until the API and the datastore answer.
package readiness

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/client"
	"github.com/zatekoja/projectapi-e2e/internal/graphql/operations"
	"github.com/zatekoja/projectapi-e2e/internal/infrastructure/observability"
	"github.com/zatekoja/projectapi-e2e/pkg/retry"
	"golang.org/x/sync/errgroup"
)

// Pinger is anything that can confirm a live connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger
type PingerFunc func(ctx context.Context) error

// Ping calls f
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// WaitForAPI posts { __typename } until a GraphQL body without errors comes back
func WaitForAPI(ctx context.Context, c *client.Client, cfg retry.Config) error {
	logger := observability.LoggerFromContext(ctx)
	return retry.DoWithLog(ctx, cfg, "graphql api", func() error {
		resp, err := c.Do(ctx, operations.Typename, nil)
		if err != nil {
			return err
		}
		if resp.HasErrors() {
			return resp.Err()
		}
		return nil
	}, logAttempt(logger, "graphql api", c.Endpoint()))
}

// WaitForMongo pings until the datastore answers
func WaitForMongo(ctx context.Context, p Pinger, cfg retry.Config) error {
	logger := observability.LoggerFromContext(ctx)
	return retry.DoWithLog(ctx, cfg, "mongodb", func() error {
		return p.Ping(ctx)
	}, logAttempt(logger, "mongodb", ""))
}

// WaitAll waits for both concurrently. A nil pinger skips the datastore.
func WaitAll(ctx context.Context, timeout time.Duration, c *client.Client, p Pinger) error {
	cfg := retry.UntilTimeout(timeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return WaitForAPI(gctx, c, cfg)
	})
	if p != nil {
		g.Go(func() error {
			return WaitForMongo(gctx, p, cfg)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("dependencies not ready within %s: %w", timeout, err)
	}
	return nil
}

func logAttempt(logger *zerolog.Logger, target, endpoint string) func(int, error, time.Duration) {
	return func(attempt int, err error, next time.Duration) {
		logger.Info().
			Str("target", target).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Dur("retry_in", next).
			Err(err).
			Msg("waiting for dependency")
	}
}
