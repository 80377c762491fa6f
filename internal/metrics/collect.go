package metrics

import (
	"context"
	"fmt"

	"github.com/jjtimmons/pipekit/config"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collect runs the extractor of every source concurrently and merges their
// metrics. Sources are merged in order, so a later source's metric replaces
// an earlier one with the same name. The first error cancels the rest.
func Collect(ctx context.Context, sources []config.MetricSource, logger *zap.Logger) (Metrics, error) {
	for _, s := range sources {
		if _, ok := Extractors[s.Tool]; !ok {
			return nil, fmt.Errorf("no metrics extractor for %q, expected one of %v", s.Tool, Tools())
		}
	}

	results := make([]Metrics, len(sources))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, s := range sources {
		i, s := i, s
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			m, err := Extract(s.Tool, s.Dir, s.Pattern)
			if err != nil {
				return fmt.Errorf("failed to extract %s metrics from %s: %w", s.Tool, s.Dir, err)
			}
			logger.Debug("extracted metrics",
				zap.String("tool", s.Tool),
				zap.String("dir", s.Dir),
				zap.Int("metrics", len(m)))

			results[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := Metrics{}
	for _, m := range results {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged, nil
}
