package domain

import "errors"

var (
	// ErrInvalidRequest signals a request rejected by validation before any retrieval work.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrPostNotFound signals a missing post.
	ErrPostNotFound = errors.New("post not found")
	// ErrVectorDimMismatch signals an embedding of the wrong dimensionality.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingUnavailable signals that the embedding provider could not be reached in time.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")
	// ErrRetrievalFailed signals that every candidate source failed.
	ErrRetrievalFailed = errors.New("retrieval failed")
)
