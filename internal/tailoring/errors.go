package tailoring

import "errors"

var (
	// ErrUserNotFound indicates no base resume exists for the user.
	ErrUserNotFound = errors.New("user not found")

	// ErrJobNotFound indicates the job description does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrUpstream indicates the completion provider failed, timed out, or
	// returned an empty completion.
	ErrUpstream = errors.New("completion provider failed")
)
