package pipeline

import "errors"

// Failure classes surfaced to callers. Collaborator failures propagate
// unrecovered; callers match with errors.Is to pick a response status.
var (
	// ErrProvider reports that the embedding provider was unreachable or
	// returned a malformed or wrong-dimension vector.
	ErrProvider = errors.New("embedding provider failure")

	// ErrStoreWrite reports that the document store rejected a write.
	ErrStoreWrite = errors.New("document store write failure")

	// ErrStoreQuery reports that the similarity query could not execute.
	ErrStoreQuery = errors.New("document store query failure")

	// ErrValidation reports a malformed request body.
	ErrValidation = errors.New("invalid request")
)
