package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/ledger"
)

// runScheduler advances due obligations on a fixed interval. Each tick
// materializes at most one cycle per obligation, so an instance that
// was down for a while catches up over consecutive ticks.
func runScheduler(ctx context.Context, svc *ledger.Service, m *metrics.Metrics, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processed := svc.ProcessDueObligations(ctx)
			m.ObligationsProcessed.Add(float64(len(processed)))
			if len(processed) > 0 {
				log.Info().Int("count", len(processed)).Msg("processed due obligations")
			}

			generated := svc.GenerateNotifications(ctx)
			for _, n := range generated {
				m.NotificationsGenerated.WithLabelValues(string(n.Type)).Inc()
			}
			if len(generated) > 0 {
				log.Info().Int("count", len(generated)).Msg("generated notifications")
			}
		}
	}
}
