package services

import "errors"

// Error kinds raised by the submission pipeline. Wrapped causes stay
// reachable through errors.Is/As.
var (
	// ErrUpload marks a failed blob write (network, quota, permission).
	ErrUpload = errors.New("upload failed")

	// ErrPersistence marks a failed collection store write.
	ErrPersistence = errors.New("persistence failed")

	// ErrSubmission wraps whatever the orchestrator encountered; it is the
	// only error kind Submit returns.
	ErrSubmission = errors.New("submission failed")
)
