package domain

import "errors"

// Error kinds surfaced by the stores and the notes service. Callers match
// them with errors.Is; lower layers wrap them with operation context.
var (
	// ErrDimensionMismatch is returned when a vector's length does not match
	// the configured embedding dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrDuplicateID is returned when inserting under an id that is already
	// present.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned when a note or vector is absent.
	ErrNotFound = errors.New("not found")

	// ErrEmptyContent is returned when adding a note whose content is empty
	// after trimming.
	ErrEmptyContent = errors.New("empty note content")

	// ErrEmptyQuery is returned when searching with an empty query string.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidK is returned when a search asks for k <= 0 results.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmbeddingUnavailable is returned when the embedding model cannot be
	// reached or run. The operation is aborted with no state change and may
	// be retried.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrCorruptState is returned when a persisted record exists but cannot
	// be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")

	// ErrConsistency means the note and vector stores disagree about which
	// ids exist. This is always a bug, never an expected condition.
	ErrConsistency = errors.New("note/vector store consistency violation")
)
