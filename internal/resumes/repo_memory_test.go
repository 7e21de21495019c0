package resumes

import (
	"context"
	"testing"
	"time"
)

func seedRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	ctx := context.Background()
	records := []Resume{
		{ID: "r1", OwnerID: "user-1", FullName: "Jane Doe", Skills: "Go, AI, SQL", CreatedAt: time.Now().UTC().Add(-3 * time.Hour)},
		{ID: "r2", OwnerID: "user-1", FullName: "Jane Doe", Skills: "Web Design", CreatedAt: time.Now().UTC().Add(-2 * time.Hour)},
		{ID: "r3", OwnerID: "user-2", FullName: "Sam Roe", Skills: "ai research", CreatedAt: time.Now().UTC().Add(-time.Hour)},
	}
	for _, r := range records {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}
	return repo
}

func ids(records []Resume) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		out[r.ID] = true
	}
	return out
}

func TestListScopeMine(t *testing.T) {
	repo := seedRepo(t)

	records, err := repo.List(context.Background(), Filter{Scope: ScopeMine, OwnerID: "user-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := ids(records)
	if len(got) != 2 || !got["r1"] || !got["r2"] {
		t.Fatalf("expected r1,r2 for scope mine, got %v", got)
	}
}

func TestListScopeAll(t *testing.T) {
	repo := seedRepo(t)

	records, err := repo.List(context.Background(), Filter{Scope: ScopeAll, OwnerID: "user-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records for scope all, got %d", len(records))
	}
}

func TestListSkillsFilterIsCaseInsensitive(t *testing.T) {
	repo := seedRepo(t)

	// "ai" matches "AI" (r1) and "ai research" (r3), but scope mine keeps
	// only the caller's rows.
	records, err := repo.List(context.Background(), Filter{Scope: ScopeMine, OwnerID: "user-1", Skills: "ai"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := ids(records)
	if len(got) != 1 || !got["r1"] {
		t.Fatalf("expected only r1, got %v", got)
	}

	records, err = repo.List(context.Background(), Filter{Scope: ScopeAll, Skills: "AI"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got = ids(records)
	if len(got) != 2 || !got["r1"] || !got["r3"] {
		t.Fatalf("expected r1,r3 for scope all skills AI, got %v", got)
	}
}

func TestListEmptyResultIsNotError(t *testing.T) {
	repo := seedRepo(t)

	records, err := repo.List(context.Background(), Filter{Scope: ScopeAll, Skills: "cobol"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", records)
	}
}

func TestDeleteRemovesFromAllScopes(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mine, _ := repo.List(ctx, Filter{Scope: ScopeMine, OwnerID: "user-1"})
	all, _ := repo.List(ctx, Filter{Scope: ScopeAll})
	if ids(mine)["r1"] || ids(all)["r1"] {
		t.Fatalf("deleted record still listed")
	}

	if _, err := repo.GetByID(ctx, "r1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdatePreservesImmutableFields(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	updated, err := repo.Update(ctx, Resume{ID: "r1", OwnerID: "intruder", FullName: "New Name"}, 0)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.OwnerID != "user-1" {
		t.Fatalf("owner changed on update: %s", updated.OwnerID)
	}
	if updated.FullName != "New Name" {
		t.Fatalf("expected overwritten name, got %s", updated.FullName)
	}
	if updated.Revision != 2 {
		t.Fatalf("expected revision 2, got %d", updated.Revision)
	}
}

func TestUpdateStaleRevisionConflicts(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	if _, err := repo.Update(ctx, Resume{ID: "r1"}, 0); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := repo.Update(ctx, Resume{ID: "r1"}, 1); err != ErrConflict {
		t.Fatalf("expected ErrConflict for stale revision, got %v", err)
	}
	// Current revision still succeeds.
	if _, err := repo.Update(ctx, Resume{ID: "r1"}, 2); err != nil {
		t.Fatalf("update with current revision: %v", err)
	}
}

func TestGetByIDIsIdempotent(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	first, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	second, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical records, got %+v vs %+v", first, second)
	}
}
