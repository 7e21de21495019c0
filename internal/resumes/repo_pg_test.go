package resumes

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func resumeRows(resume Resume) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "full_name", "email", "phone", "summary",
		"education", "experience", "skills", "projects", "languages",
		"profile_image_url", "revision", "created_at", "updated_at",
	}).AddRow(
		resume.ID, resume.OwnerID, resume.FullName, resume.Email, resume.Phone,
		resume.Summary, resume.Education, resume.Experience, resume.Skills,
		resume.Projects, resume.Languages, resume.ProfileImageURL,
		resume.Revision, resume.CreatedAt, resume.UpdatedAt,
	)
}

func testResume() Resume {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Resume{
		ID:        "res-1",
		OwnerID:   "user-1",
		FullName:  "Jane Doe",
		Email:     "jane@x.com",
		Skills:    "Go, SQL",
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			resume.ID, resume.OwnerID, resume.FullName, resume.Email,
			resume.Phone, resume.Summary, resume.Education, resume.Experience,
			resume.Skills, resume.Projects, resume.Languages, nil,
			resume.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), resume); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListFiltersByOwnerAndSkills(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectQuery(`SELECT (.+) FROM resumes WHERE owner_id = \$1 AND skills ILIKE \$2 ORDER BY created_at DESC`).
		WithArgs("user-1", "%go%").
		WillReturnRows(resumeRows(resume))

	records, err := repo.List(context.Background(), Filter{
		Scope:   ScopeMine,
		OwnerID: "user-1",
		Skills:  "go",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].ID != resume.ID {
		t.Fatalf("unexpected records: %+v", records)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAllHasNoWhereClause(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectQuery(`SELECT (.+) FROM resumes ORDER BY created_at DESC`).
		WillReturnRows(resumeRows(resume))

	records, err := repo.List(context.Background(), Filter{Scope: ScopeAll})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestPGRepoUpdateWithRevisionGuard(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectExec("UPDATE resumes SET").
		WithArgs(
			resume.ID, resume.FullName, resume.Email, resume.Phone,
			resume.Summary, resume.Education, resume.Experience,
			resume.Skills, resume.Projects, resume.Languages, nil, 1,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	updated := resume
	updated.Revision = 2
	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id").
		WithArgs(resume.ID).
		WillReturnRows(resumeRows(updated))

	got, err := repo.Update(context.Background(), resume, 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Revision != 2 {
		t.Fatalf("expected revision 2, got %d", got.Revision)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStaleRevisionConflicts(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectExec("UPDATE resumes SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Row still exists, so the zero-row update means a revision mismatch.
	current := resume
	current.Revision = 2
	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id").
		WithArgs(resume.ID).
		WillReturnRows(resumeRows(current))

	if _, err := repo.Update(context.Background(), resume, 1); err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGRepoUpdateMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	resume := testResume()

	mock.ExpectExec("UPDATE resumes SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id").
		WithArgs(resume.ID).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.Update(context.Background(), resume, 0); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
