package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/gateway"
	"resume-gpt-api/internal/llm"
	"resume-gpt-api/internal/llm/openai"
	"resume-gpt-api/internal/resumes"
	"resume-gpt-api/internal/shared/config"
	"resume-gpt-api/internal/shared/server"
	"resume-gpt-api/internal/shared/storage/db"
	"resume-gpt-api/internal/tailoring"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            gateway.Store
	LLM              llm.Client
	GatewayService   *gateway.Service
	TailoringService *tailoring.Service
	ResumesService   *resumes.Service
	GatewayHandler   *gateway.Handler
	TailoringHandler *tailoring.Handler
	ResumesHandler   *resumes.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store gateway.Store
	if sqlDB != nil {
		store = &gateway.PGStore{DB: sqlDB}
	} else {
		store = gateway.NewMemoryStore()
	}

	llmClient := buildLLM(cfg)

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		LLM:    llmClient,
	}

	app.GatewayService = gateway.NewService(store)
	app.TailoringService = &tailoring.Service{Store: store, LLM: llmClient}
	app.ResumesService = &resumes.Service{Store: store}

	app.GatewayHandler = gateway.NewHandler(app.GatewayService)
	app.TailoringHandler = tailoring.NewHandler(app.TailoringService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		GatewayHandler:   app.GatewayHandler,
		TailoringHandler: app.TailoringHandler,
		ResumesHandler:   app.ResumesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory store")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory store: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

// buildLLM returns a real client only when credentials are present; the
// placeholder reports the missing configuration at call time.
func buildLLM(cfg config.Config) llm.Client {
	if cfg.LLMProvider != "openai" {
		log.Printf("bootstrap: unknown LLM provider %q; tailoring disabled", cfg.LLMProvider)
		return llm.PlaceholderClient{}
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		log.Printf("bootstrap: OPENAI_API_KEY empty; tailoring disabled")
		return llm.PlaceholderClient{}
	}
	client, err := openai.NewClient(apiKey, cfg.LLMModel)
	if err != nil {
		log.Printf("bootstrap: openai client init failed; tailoring disabled: %v", err)
		return llm.PlaceholderClient{}
	}
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
