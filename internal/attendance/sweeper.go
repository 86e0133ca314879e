package attendance

import (
	"context"
	"time"

	"github.com/famsdev/fams_backend/internal/metrics"
)

// RunSweeper fires the absence sweep for the current date at the given
// interval until the context is cancelled. The sweep's own idempotence makes
// overlapping or repeated runs harmless, so no further coordination is
// needed here.
func (m *Machine) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	m.log.Info().Dur("interval", interval).Msg("absence sweeper started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("absence sweeper stopped")
			return
		case <-ticker.C:
			inserted, err := m.SweepAbsences(ctx, m.now())
			if err != nil {
				m.log.Error().Err(err).Msg("absence sweep failed")
				continue
			}
			metrics.AbsencesSwept.Add(float64(inserted))
		}
	}
}
