package resumes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	in, img, _, err := parseSaveRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if img != nil {
		defer img.close()
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, in, img.upload())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		}
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, toResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	scope := c.DefaultQuery("scope", ScopeMine)
	skills := c.Query("skills")

	records, err := h.Svc.List(c.Request.Context(), userID, scope, skills)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]ResumeResponse, 0, len(records))
	for _, resume := range records {
		resp = append(resp, toResponse(resume))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	resume, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	in, img, revision, err := parseSaveRequest(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	if img != nil {
		defer img.close()
	}

	resume, err := h.Svc.Update(c.Request.Context(), userID, id, in, img.upload(), revision)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")
	c.Set("resumeId", id)

	if err := h.Svc.Delete(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// saveBody is the JSON form of a save request, used by inline edits that carry
// no file.
type saveBody struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Summary    string `json:"summary"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	Projects   string `json:"projects"`
	Languages  string `json:"languages"`
	Revision   int    `json:"revision"`
}

// pendingImage holds an opened multipart file until the save completes.
type pendingImage struct {
	img   ImageUpload
	close func() error
}

func (p *pendingImage) upload() *ImageUpload {
	if p == nil {
		return nil
	}
	return &p.img
}

// parseSaveRequest reads a create/update payload. The form screen posts
// multipart (fields plus an optional profilePic file); inline editors post
// plain JSON.
func parseSaveRequest(c *gin.Context) (Input, *pendingImage, int, error) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var body saveBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return Input{}, nil, 0, errors.New("invalid request body")
		}
		return inputFromBody(body), nil, body.Revision, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		return Input{}, nil, 0, errors.New("invalid multipart form")
	}

	in := Input{
		FullName:   c.PostForm("fullName"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		Summary:    c.PostForm("summary"),
		Education:  c.PostForm("education"),
		Experience: c.PostForm("experience"),
		Skills:     c.PostForm("skills"),
		Projects:   c.PostForm("projects"),
		Languages:  c.PostForm("languages"),
	}

	revision := 0
	if raw := c.PostForm("revision"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Input{}, nil, 0, errors.New("revision must be a non-negative integer")
		}
		revision = parsed
	}

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, revision, nil
		}
		return Input{}, nil, 0, errors.New("unable to read profilePic")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Input{}, nil, 0, errors.New("unable to read profilePic")
	}

	pending := &pendingImage{
		img: ImageUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Reader:      file,
		},
		close: file.Close,
	}
	return in, pending, revision, nil
}

func inputFromBody(body saveBody) Input {
	return Input{
		FullName:   body.FullName,
		Email:      body.Email,
		Phone:      body.Phone,
		Summary:    body.Summary,
		Education:  body.Education,
		Experience: body.Experience,
		Skills:     body.Skills,
		Projects:   body.Projects,
		Languages:  body.Languages,
	}
}
