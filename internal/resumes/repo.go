package resumes

import "context"

// Repo defines persistence operations for resume records.
//
// Update overwrites every mutable field and bumps the revision counter.
// expectedRevision > 0 makes the write conditional: a stale value fails with
// ErrConflict and nothing is written. Zero preserves last-write-wins.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	List(ctx context.Context, filter Filter) ([]Resume, error)
	Update(ctx context.Context, resume Resume, expectedRevision int) (Resume, error)
	Delete(ctx context.Context, id string) error
}
