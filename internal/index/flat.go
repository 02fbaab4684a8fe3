package index

import (
	"fmt"
	"sort"
	"sync"

	"semnotes/internal/domain"
)

// Match is a single nearest-neighbor hit.
type Match struct {
	ID       int64
	Distance float64 // squared Euclidean distance
}

// Flat is an exact nearest-neighbor index over fixed-dimension vectors.
// Search is a brute-force scan, which always finds the true top-k; at
// hundreds to low thousands of vectors no index structure is needed. Safe
// for concurrent use.
type Flat struct {
	mu        sync.RWMutex
	dimension int
	vectors   map[int64][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dimension int) *Flat {
	return &Flat{
		dimension: dimension,
		vectors:   make(map[int64][]float32),
	}
}

// Dimension returns the configured vector dimension.
func (f *Flat) Dimension() int {
	return f.dimension
}

// Insert adds a vector under id. The slice is copied, so the caller may
// reuse it.
func (f *Flat) Insert(id int64, vec []float32) error {
	if len(vec) != f.dimension {
		return fmt.Errorf("insert id %d: expected %d components, got %d: %w",
			id, f.dimension, len(vec), domain.ErrDimensionMismatch)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.vectors[id]; exists {
		return fmt.Errorf("insert id %d: %w", id, domain.ErrDuplicateID)
	}

	stored := make([]float32, len(vec))
	copy(stored, vec)
	f.vectors[id] = stored
	return nil
}

// Search returns up to k stored vectors ordered by ascending squared
// Euclidean distance from vec. Ties are broken by ascending id so results
// are deterministic. Fewer than k stored vectors is not an error; all of
// them are returned.
func (f *Flat) Search(vec []float32, k int) ([]Match, error) {
	if len(vec) != f.dimension {
		return nil, fmt.Errorf("search: expected %d components, got %d: %w",
			f.dimension, len(vec), domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, fmt.Errorf("search: k=%d: %w", k, domain.ErrInvalidK)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	matches := make([]Match, 0, len(f.vectors))
	for id, stored := range f.vectors {
		matches = append(matches, Match{ID: id, Distance: squaredL2(vec, stored)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].ID < matches[j].ID
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Remove deletes the vector stored under id.
func (f *Flat) Remove(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.vectors[id]; !exists {
		return fmt.Errorf("remove id %d: %w", id, domain.ErrNotFound)
	}
	delete(f.vectors, id)
	return nil
}

// Size returns the number of stored vectors.
func (f *Flat) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

// IDs returns all stored ids in ascending order.
func (f *Flat) IDs() []int64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]int64, 0, len(f.vectors))
	for id := range f.vectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Vector returns a copy of the vector stored under id.
func (f *Flat) Vector(id int64) ([]float32, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stored, ok := f.vectors[id]
	if !ok {
		return nil, false
	}
	out := make([]float32, len(stored))
	copy(out, stored)
	return out, true
}

// squaredL2 computes the squared Euclidean distance between two vectors of
// equal length. The square root is never taken: ordering under L2 and
// squared L2 is identical.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
