package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success payload: a human message plus data.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// OK writes a 200 OK success envelope.
func OK(c *gin.Context, message string, data any) {
	JSON(c, http.StatusOK, message, data)
}
