package server

import (
	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/gateway"
	"resume-gpt-api/internal/resumes"
	"resume-gpt-api/internal/shared/config"
	"resume-gpt-api/internal/shared/server/middleware"
	"resume-gpt-api/internal/shared/server/respond"
	"resume-gpt-api/internal/tailoring"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	GatewayHandler   *gateway.Handler
	TailoringHandler *tailoring.Handler
	ResumesHandler   *resumes.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, "Welcome to Resume GPT API", nil)
	})

	deps.GatewayHandler.RegisterRoutes(r)
	deps.TailoringHandler.RegisterRoutes(r)
	deps.ResumesHandler.RegisterRoutes(r)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
