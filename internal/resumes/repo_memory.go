package resumes

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume // id -> resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now
	if resume.Revision == 0 {
		resume.Revision = 1
	}
	r.data[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	skills := strings.ToLower(strings.TrimSpace(filter.Skills))
	out := []Resume{}
	for _, resume := range r.data {
		if filter.Scope == ScopeMine && resume.OwnerID != filter.OwnerID {
			continue
		}
		if skills != "" && !strings.Contains(strings.ToLower(resume.Skills), skills) {
			continue
		}
		out = append(out, resume)
	}

	// Newest first for a stable dashboard order.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume, expectedRevision int) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.data[resume.ID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	if expectedRevision > 0 && existing.Revision != expectedRevision {
		return Resume{}, ErrConflict
	}

	// id, owner and created_at are immutable.
	resume.OwnerID = existing.OwnerID
	resume.CreatedAt = existing.CreatedAt
	resume.Revision = existing.Revision + 1
	resume.UpdatedAt = time.Now().UTC()
	r.data[resume.ID] = resume
	return resume, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}
