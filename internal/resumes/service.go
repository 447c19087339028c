package resumes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resume-gpt-api/internal/gateway"
)

// Service stores resume and job-description text through the gateway store.
type Service struct {
	Store gateway.Store
}

// UploadResume stores resume text for a user. When userID is empty a new
// one is generated. Returns the stored row and the user id.
func (s *Service) UploadResume(ctx context.Context, userID, content string) (gateway.Row, string, error) {
	if userID == "" {
		userID = uuid.NewString()
	}
	rows, err := s.Store.Insert(ctx, "resumes", []gateway.Row{{
		"user_id": userID,
		"content": content,
	}})
	if err != nil {
		return nil, "", fmt.Errorf("store resume: %w", err)
	}
	return rows[0], userID, nil
}

// UploadJobDescription stores a job description and returns the stored row
// and its generated sequential id.
func (s *Service) UploadJobDescription(ctx context.Context, description string) (gateway.Row, int, error) {
	rows, err := s.Store.Insert(ctx, "job_descriptions", []gateway.Row{{
		"description": description,
	}})
	if err != nil {
		return nil, 0, fmt.Errorf("store job description: %w", err)
	}
	jobID, err := intValue(rows[0]["id"])
	if err != nil {
		return nil, 0, fmt.Errorf("job description id: %w", err)
	}
	return rows[0], jobID, nil
}

// InsertSampleData seeds a synthetic user with a sample resume and a sample
// job description and returns the generated identifiers.
func (s *Service) InsertSampleData(ctx context.Context) (string, int, error) {
	userID := uuid.NewString()

	if _, _, err := s.UploadResume(ctx, userID, sampleResume); err != nil {
		return "", 0, err
	}
	_, jobID, err := s.UploadJobDescription(ctx, sampleJobDescription)
	if err != nil {
		return "", 0, err
	}
	return userID, jobID, nil
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
