package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder-backend/internal/shared/metrics"
	"resume-builder-backend/internal/shared/storage/object"
	"resume-builder-backend/internal/shared/util"
)

// Service contains business logic for resume records.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Input carries every user-editable field of a resume. Saves are full-field
// overwrites: what the caller sends is what is stored.
type Input struct {
	FullName   string
	Email      string
	Phone      string
	Summary    string
	Education  string
	Experience string
	Skills     string
	Projects   string
	Languages  string
}

// ImageUpload is a new profile image accompanying a save.
type ImageUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Create inserts a new record owned by ownerID. If img is non-nil the image is
// uploaded first; an upload failure aborts the whole save and nothing is
// persisted.
func (s *Service) Create(ctx context.Context, ownerID string, in Input, img *ImageUpload) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, errors.New("owner id required")
	}
	started := metrics.NowMillis()

	imageURL, err := s.uploadImage(ctx, ownerID, img)
	if err != nil {
		metrics.IncResumeSaveFailed()
		return Resume{}, err
	}

	resume := Resume{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		ProfileImageURL: imageURL,
		Revision:        1,
		CreatedAt:       time.Now().UTC(),
	}
	applyInput(&resume, in)

	if err := s.Repo.Create(ctx, resume); err != nil {
		metrics.IncResumeSaveFailed()
		return Resume{}, err
	}
	metrics.IncResumeSaved()
	metrics.ObserveSaveDurationMs(metrics.NowMillis() - started)
	return resume, nil
}

// Update overwrites every field of an existing record. Only the owner may
// update. A non-nil img follows the upload-first protocol; otherwise the
// stored image URL is carried over. expectedRevision > 0 makes the write
// conditional (see Repo).
func (s *Service) Update(ctx context.Context, userID, id string, in Input, img *ImageUpload, expectedRevision int) (Resume, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if existing.OwnerID != userID {
		return Resume{}, ErrForbidden
	}
	started := metrics.NowMillis()

	imageURL := existing.ProfileImageURL
	if img != nil {
		imageURL, err = s.uploadImage(ctx, existing.OwnerID, img)
		if err != nil {
			metrics.IncResumeSaveFailed()
			return Resume{}, err
		}
	}

	resume := existing
	resume.ProfileImageURL = imageURL
	applyInput(&resume, in)

	updated, err := s.Repo.Update(ctx, resume, expectedRevision)
	if err != nil {
		metrics.IncResumeSaveFailed()
		return Resume{}, err
	}
	metrics.IncResumeSaved()
	metrics.ObserveSaveDurationMs(metrics.NowMillis() - started)
	return updated, nil
}

// List returns records matching the scope and optional skills substring.
func (s *Service) List(ctx context.Context, userID, scope, skills string) ([]Resume, error) {
	switch scope {
	case ScopeMine, ScopeAll:
	case "":
		scope = ScopeMine
	default:
		return nil, fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, scope)
	}
	return s.Repo.List(ctx, Filter{Scope: scope, OwnerID: userID, Skills: skills})
}

// Get loads one record by id.
func (s *Service) Get(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Delete removes a record permanently. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != userID {
		return ErrForbidden
	}
	return s.Repo.Delete(ctx, id)
}

// uploadImage stores the image under <owner>/<filename>, overwriting any
// previous object at that key, and returns its public URL.
func (s *Service) uploadImage(ctx context.Context, ownerID string, img *ImageUpload) (string, error) {
	if img == nil {
		return "", nil
	}
	name, err := util.SanitizeFileName(img.FileName)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	key := ownerID + "/" + name
	if _, err := s.Store.Put(ctx, key, img.ContentType, img.Reader); err != nil {
		return "", fmt.Errorf("upload profile image: %w", err)
	}
	metrics.IncImageUploaded()
	return s.Store.PublicURL(key), nil
}

func applyInput(resume *Resume, in Input) {
	resume.FullName = in.FullName
	resume.Email = in.Email
	resume.Phone = in.Phone
	resume.Summary = in.Summary
	resume.Education = in.Education
	resume.Experience = in.Experience
	resume.Skills = in.Skills
	resume.Projects = in.Projects
	resume.Languages = in.Languages
}
