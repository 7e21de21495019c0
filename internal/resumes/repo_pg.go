package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, full_name, email, phone, summary, education, experience, skills, projects, languages, profile_image_url, revision, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    owner_id,
    full_name,
    email,
    phone,
    summary,
    education,
    experience,
    skills,
    projects,
    languages,
    profile_image_url,
    revision,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, $13, $13)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.OwnerID,
		resume.FullName,
		resume.Email,
		resume.Phone,
		resume.Summary,
		resume.Education,
		resume.Experience,
		resume.Skills,
		resume.Projects,
		resume.Languages,
		nullableString(resume.ProfileImageURL),
		resume.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE id = $1 LIMIT 1`, resumeColumns)
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Resume, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Scope == ScopeMine {
		args = append(args, filter.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if skills := strings.TrimSpace(filter.Skills); skills != "" {
		args = append(args, "%"+skills+"%")
		conds = append(conds, fmt.Sprintf("skills ILIKE $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM resumes`, resumeColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, resume Resume, expectedRevision int) (Resume, error) {
	query := `
UPDATE resumes SET
    full_name = $2,
    email = $3,
    phone = $4,
    summary = $5,
    education = $6,
    experience = $7,
    skills = $8,
    projects = $9,
    languages = $10,
    profile_image_url = $11,
    revision = revision + 1,
    updated_at = now()
WHERE id = $1`
	args := []any{
		resume.ID,
		resume.FullName,
		resume.Email,
		resume.Phone,
		resume.Summary,
		resume.Education,
		resume.Experience,
		resume.Skills,
		resume.Projects,
		resume.Languages,
		nullableString(resume.ProfileImageURL),
	}
	if expectedRevision > 0 {
		args = append(args, expectedRevision)
		query += fmt.Sprintf(" AND revision = $%d", len(args))
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return Resume{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Resume{}, err
	}
	if affected == 0 {
		// Missing row and stale revision both hit zero rows; look again to
		// report the right failure.
		if _, getErr := r.GetByID(ctx, resume.ID); getErr != nil {
			return Resume{}, getErr
		}
		return Resume{}, ErrConflict
	}
	return r.GetByID(ctx, resume.ID)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var imageURL sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&resume.ID,
		&resume.OwnerID,
		&resume.FullName,
		&resume.Email,
		&resume.Phone,
		&resume.Summary,
		&resume.Education,
		&resume.Experience,
		&resume.Skills,
		&resume.Projects,
		&resume.Languages,
		&imageURL,
		&resume.Revision,
		&resume.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if imageURL.Valid {
		resume.ProfileImageURL = imageURL.String
	}
	if updatedAt.Valid {
		resume.UpdatedAt = updatedAt.Time
	} else {
		resume.UpdatedAt = time.Now().UTC()
	}
	return resume, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
