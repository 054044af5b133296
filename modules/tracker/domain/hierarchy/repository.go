package hierarchy

import "context"

// ReadRepository is the data-access contract the engine consumes. Both the
// Postgres repository and the upstream Worky API client implement it.
//
// ListByParent returns every record of level whose parent id equals
// parentID; parentID must be empty only for Client. List returns the
// unfiltered set for one level. GetByID returns the single record named id,
// ErrNotFound when it does not exist, or ErrLookupUnsupported when the
// backing store has no single-record lookup for that level.
type ReadRepository interface {
	List(ctx context.Context, level Level) ([]EntityRecord, error)
	ListByParent(ctx context.Context, level Level, parentID string) ([]EntityRecord, error)
	GetByID(ctx context.Context, level Level, id string) (EntityRecord, error)
}
