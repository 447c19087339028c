package respond

import (
	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/shared/telemetry"
)

// ErrorBody is the uniform error payload.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error sends the uniform error envelope and logs the failure.
func Error(c *gin.Context, status int, detail string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}
