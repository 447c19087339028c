package tailoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"resume-gpt-api/internal/gateway"
	"resume-gpt-api/internal/llm"
)

// Service produces tailored resumes by combining stored rows with a
// completion call.
type Service struct {
	Store gateway.Store
	LLM   llm.Client
}

// Result is the outcome of a tailoring request.
type Result struct {
	UserID         string `json:"user_id"`
	JobID          int    `json:"job_id"`
	TailoredResume string `json:"tailored_resume"`
}

// TailorResume fetches the user's base resume and the job description,
// asks the provider to adapt the resume, and persists the result as a new
// tailored_resumes row. A single provider failure is terminal; there is no
// retry.
func (s *Service) TailorResume(ctx context.Context, userID string, jobID int) (Result, error) {
	resumeRows, err := s.Store.Query(ctx, gateway.QuerySpec{
		Table:   "resumes",
		Filters: map[string]any{"user_id": userID},
	})
	if err != nil {
		return Result{}, fmt.Errorf("fetch resume: %w", err)
	}
	if len(resumeRows) == 0 {
		return Result{}, ErrUserNotFound
	}
	baseResume := stringValue(resumeRows[0]["content"])
	baseResumeID := resumeRows[0]["id"]

	jobRows, err := s.Store.Query(ctx, gateway.QuerySpec{
		Table:   "job_descriptions",
		Filters: map[string]any{"id": jobID},
	})
	if err != nil {
		return Result{}, fmt.Errorf("fetch job description: %w", err)
	}
	if len(jobRows) == 0 {
		return Result{}, ErrJobNotFound
	}
	jobDescription := stringValue(jobRows[0]["description"])

	prompt := llm.TailorPrompt(baseResume, jobDescription)
	tailored, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	tailored = strings.TrimSpace(tailored)
	if tailored == "" {
		return Result{}, fmt.Errorf("%w: empty completion", ErrUpstream)
	}

	_, err = s.Store.Insert(ctx, "tailored_resumes", []gateway.Row{{
		"id":             uuid.NewString(),
		"user_id":        userID,
		"job_id":         jobID,
		"base_resume_id": baseResumeID,
		"content":        tailored,
	}})
	if err != nil {
		return Result{}, fmt.Errorf("store tailored resume: %w", err)
	}

	return Result{UserID: userID, JobID: jobID, TailoredResume: tailored}, nil
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
