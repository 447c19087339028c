package resumes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/shared/server/respond"
)

// Handler wires the upload and seeding endpoints to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the upload and seeding routes to the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/upload-resume", h.uploadResume)
	r.POST("/upload-job-description", h.uploadJobDescription)
	r.POST("/insert-sample-data", h.insertSampleData)
}

type uploadResumeRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

func (h *Handler) uploadResume(c *gin.Context) {
	var req uploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(c, http.StatusBadRequest, "content is required")
		return
	}

	row, userID, err := h.Svc.UploadResume(c.Request.Context(), strings.TrimSpace(req.UserID), req.Content)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(c, http.StatusCreated, "Resume uploaded successfully", gin.H{
		"user_id": userID,
		"resume":  row,
	})
}

type uploadJobDescriptionRequest struct {
	Description string `json:"description"`
}

func (h *Handler) uploadJobDescription(c *gin.Context) {
	var req uploadJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		respond.Error(c, http.StatusBadRequest, "description is required")
		return
	}

	row, jobID, err := h.Svc.UploadJobDescription(c.Request.Context(), req.Description)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(c, http.StatusCreated, "Job description uploaded successfully", gin.H{
		"job_id":          jobID,
		"job_description": row,
	})
}

func (h *Handler) insertSampleData(c *gin.Context) {
	userID, jobID, err := h.Svc.InsertSampleData(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, "Sample data inserted successfully", gin.H{
		"user_id": userID,
		"job_id":  jobID,
	})
}
