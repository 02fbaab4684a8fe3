package port

import (
	"time"

	"semnotes/internal/domain"
	"semnotes/internal/index"
)

// NoteRepository stores note content keyed by id.
type NoteRepository interface {
	// Insert stores a note under id. Fails with domain.ErrDuplicateID if the
	// id already exists. The note is durable before Insert returns.
	Insert(id int64, content string, createdAt time.Time) error

	// Get returns the note with the given id, or domain.ErrNotFound.
	Get(id int64) (domain.Note, error)

	// GetAll returns all notes ordered by ascending id.
	GetAll() ([]domain.Note, error)

	// NextID returns a fresh unique id. IDs are monotonic and seeded from
	// the highest persisted id at open time.
	NextID() (int64, error)

	// Delete removes the note, or returns domain.ErrNotFound.
	Delete(id int64) error

	Close() error
}

// VectorIndex stores embedding vectors keyed by note id and answers exact
// nearest-neighbor queries.
type VectorIndex interface {
	// Insert adds a vector under id. Fails with domain.ErrDimensionMismatch
	// or domain.ErrDuplicateID.
	Insert(id int64, vec []float32) error

	// Search returns up to k stored vectors ordered by ascending squared
	// Euclidean distance from vec, ties broken by ascending id.
	Search(vec []float32, k int) ([]index.Match, error)

	// Remove deletes the vector, or returns domain.ErrNotFound.
	Remove(id int64) error

	// Size returns the number of stored vectors.
	Size() int

	// IDs returns all stored ids in ascending order.
	IDs() []int64

	Close() error
}
