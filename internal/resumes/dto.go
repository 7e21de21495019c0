package resumes

import "time"

// ResumeResponse is the outward-facing representation of a resume record.
type ResumeResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Summary         string    `json:"summary"`
	Education       string    `json:"education"`
	Experience      string    `json:"experience"`
	Skills          string    `json:"skills"`
	Projects        string    `json:"projects"`
	Languages       string    `json:"languages"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	Revision        int       `json:"revision"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toResponse(resume Resume) ResumeResponse {
	return ResumeResponse{
		ID:              resume.ID,
		OwnerID:         resume.OwnerID,
		FullName:        resume.FullName,
		Email:           resume.Email,
		Phone:           resume.Phone,
		Summary:         resume.Summary,
		Education:       resume.Education,
		Experience:      resume.Experience,
		Skills:          resume.Skills,
		Projects:        resume.Projects,
		Languages:       resume.Languages,
		ProfileImageURL: resume.ProfileImageURL,
		Revision:        resume.Revision,
		CreatedAt:       resume.CreatedAt,
		UpdatedAt:       resume.UpdatedAt,
	}
}
