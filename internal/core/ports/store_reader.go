package ports

import (
	"context"
)

// StoreReader exposes the last committed state of the entity store to queries.
// The returned snapshot is never modified afterwards, so callers may keep it.
type StoreReader interface {
	Snapshot(ctx context.Context) Snapshot
}
