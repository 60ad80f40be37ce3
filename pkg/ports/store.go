package ports

import "context"

// StateStore persists variables flagged `persisted` across render
// sessions, keyed by variable name. In the browser this is local
// storage; on the server it is memory or Redis.
//
// Load returns domain.ErrVariableNotPersisted when no value is stored;
// callers then fall back to the declared initial value.
type StateStore interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string) (any, error)
	Delete(ctx context.Context, key string) error
}
