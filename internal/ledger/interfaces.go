package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrNoSnapshot is returned by SnapshotStore.Load when no snapshot has
// been written yet (first run).
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists the whole serialized ledger as one opaque blob.
// Save replaces any previous snapshot; last writer wins at blob
// granularity.
type SnapshotStore interface {
	Save(ctx context.Context, blob []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock abstracts "now" so date-cycle logic is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }
