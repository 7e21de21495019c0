package resumes

import "time"

// Resume is one user-authored resume record.
type Resume struct {
	ID              string
	OwnerID         string
	FullName        string
	Email           string
	Phone           string
	Summary         string
	Education       string
	Experience      string
	Skills          string
	Projects        string
	Languages       string
	ProfileImageURL string // empty until an image upload succeeds
	Revision        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Scope selects which owners' records a list query returns.
const (
	ScopeMine = "mine"
	ScopeAll  = "all"
)

// Filter narrows a list query. OwnerID applies only when Scope is mine;
// Skills is a case-insensitive substring match on the skills field.
type Filter struct {
	Scope   string
	OwnerID string
	Skills  string
}
