package tailoring_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-gpt-api/internal/bootstrap"
	"resume-gpt-api/internal/shared/config"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Complete(context.Context, string) (string, error) {
	return s.reply, s.err
}

func buildApp(t *testing.T, client stubLLM) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"*"},
		Env:             "dev",
		LLMProvider:     "openai",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	app.TailoringService.LLM = client
	return app
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestTailorResumeEndToEnd(t *testing.T) {
	app := buildApp(t, stubLLM{reply: "polished resume"})

	resp := postJSON(t, app.Router, "/insert-sample-data", map[string]any{})
	if resp.Code != http.StatusOK {
		t.Fatalf("insert-sample-data: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var seeded struct {
		Data struct {
			UserID string `json:"user_id"`
			JobID  int    `json:"job_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&seeded); err != nil {
		t.Fatalf("decode seed response: %v", err)
	}
	if seeded.Data.UserID == "" || seeded.Data.JobID == 0 {
		t.Fatalf("missing identifiers in seed response: %+v", seeded.Data)
	}

	resp = postJSON(t, app.Router, "/tailor-resume", map[string]any{
		"user_id": seeded.Data.UserID,
		"job_id":  seeded.Data.JobID,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("tailor-resume: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var tailored struct {
		Message string `json:"message"`
		Data    struct {
			UserID         string `json:"user_id"`
			JobID          int    `json:"job_id"`
			TailoredResume string `json:"tailored_resume"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tailored); err != nil {
		t.Fatalf("decode tailor response: %v", err)
	}
	if tailored.Message != "Resume tailored successfully" {
		t.Fatalf("unexpected message: %s", tailored.Message)
	}
	if tailored.Data.TailoredResume != "polished resume" {
		t.Fatalf("unexpected tailored content: %q", tailored.Data.TailoredResume)
	}
	if tailored.Data.UserID != seeded.Data.UserID || tailored.Data.JobID != seeded.Data.JobID {
		t.Fatalf("identifiers do not round-trip: %+v", tailored.Data)
	}
}

func TestTailorResumeUnknownUserReturns404(t *testing.T) {
	app := buildApp(t, stubLLM{reply: "unused"})

	resp := postJSON(t, app.Router, "/tailor-resume", map[string]any{
		"user_id": "missing-user",
		"job_id":  1,
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Detail != "User not found" {
		t.Fatalf("unexpected detail: %q", body.Detail)
	}
}

func TestTailorResumeValidation(t *testing.T) {
	app := buildApp(t, stubLLM{reply: "unused"})

	resp := postJSON(t, app.Router, "/tailor-resume", map[string]any{"job_id": 1})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing user_id, got %d", resp.Code)
	}

	resp = postJSON(t, app.Router, "/tailor-resume", map[string]any{"user_id": "u-1", "job_id": 0})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-positive job_id, got %d", resp.Code)
	}
}
