package snapshot

import (
	"context"
	"time"

	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/ledger"
)

// InstrumentedStore decorates a store with save/load metrics.
type InstrumentedStore struct {
	inner ledger.SnapshotStore
	m     *metrics.Metrics
}

// Instrument wraps store; a nil metrics set returns it unwrapped.
func Instrument(store ledger.SnapshotStore, m *metrics.Metrics) ledger.SnapshotStore {
	if m == nil {
		return store
	}
	return &InstrumentedStore{inner: store, m: m}
}

func (s *InstrumentedStore) Save(ctx context.Context, blob []byte) error {
	err := s.inner.Save(ctx, blob)
	if err != nil {
		s.m.SnapshotSaves.WithLabelValues("error").Inc()
		return err
	}
	s.m.SnapshotSaves.WithLabelValues("ok").Inc()
	s.m.SnapshotSize.Set(float64(len(blob)))
	return nil
}

func (s *InstrumentedStore) Load(ctx context.Context) ([]byte, error) {
	start := time.Now()
	blob, err := s.inner.Load(ctx)
	s.m.SnapshotLoadDuration.Observe(time.Since(start).Seconds())
	return blob, err
}
