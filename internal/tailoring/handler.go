package tailoring

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/llm"
	"resume-gpt-api/internal/shared/server/respond"
)

// Handler wires the tailoring endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the tailoring route to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/tailor-resume", h.tailorResume)
}

type tailorResumeRequest struct {
	UserID string `json:"user_id"`
	JobID  int    `json:"job_id"`
}

func (h *Handler) tailorResume(c *gin.Context) {
	var req tailorResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		respond.Error(c, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.JobID <= 0 {
		respond.Error(c, http.StatusBadRequest, "job_id must be a positive integer")
		return
	}

	result, err := h.Svc.TailorResume(c.Request.Context(), req.UserID, req.JobID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrJobNotFound):
			respond.Error(c, http.StatusNotFound, "Job not found")
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, err.Error())
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respond.OK(c, "Resume tailored successfully", result)
}
