package services

import "errors"

var (
	// ErrMalformedUpload means the CSV header or shape was wrong. The whole
	// upload aborts and nothing is staged.
	ErrMalformedUpload = errors.New("malformed upload")

	// ErrValidation means a staging record failed ingest-time validation.
	// The orchestrator records it on the row and moves on; it never aborts
	// a pass.
	ErrValidation = errors.New("validation failed")
)
