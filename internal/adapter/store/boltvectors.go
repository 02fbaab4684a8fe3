package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.etcd.io/bbolt"
	"semnotes/internal/domain"
	"semnotes/internal/index"
)

var bucketVectors = []byte("vectors")

// BoltVectors persists embedding vectors in bbolt and keeps them mirrored in
// an exact flat index for search. Keys are big-endian uint64 ids, matching
// the note repository.
type BoltVectors struct {
	db     *bbolt.DB
	flat   *index.Flat
	ownsDB bool

	// serializes the put-then-mirror step in Insert and Remove so the bolt
	// bucket and the in-memory index never diverge
	mu sync.Mutex
}

// NewBoltVectors creates a vector store in the given database, loading any
// persisted vectors into memory. A record that cannot be decoded, or whose
// dimension disagrees with the configured one, fails the load with
// domain.ErrCorruptState.
func NewBoltVectors(db *bbolt.DB, dimension int) (*BoltVectors, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVectors)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vectors bucket: %w", err)
	}

	s := &BoltVectors{
		db:   db,
		flat: index.NewFlat(dimension),
	}
	if err := s.loadVectors(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewBoltVectorsAt opens a standalone bbolt file for the vectors, used when
// the note backend cannot share one. An absent file is a normal cold start.
func NewBoltVectorsAt(path string, dimension int) (*BoltVectors, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db: %w", err)
	}
	s, err := NewBoltVectors(db, dimension)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

func (s *BoltVectors) loadVectors() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVectors).ForEach(func(k, v []byte) error {
			var vec []float32
			if err := json.Unmarshal(v, &vec); err != nil {
				return fmt.Errorf("vector %d: %v: %w", idFromKey(k), err, domain.ErrCorruptState)
			}
			if err := s.flat.Insert(idFromKey(k), vec); err != nil {
				return fmt.Errorf("vector %d: %v: %w", idFromKey(k), err, domain.ErrCorruptState)
			}
			return nil
		})
	})
}

func (s *BoltVectors) Insert(id int64, vec []float32) error {
	if len(vec) != s.flat.Dimension() {
		return fmt.Errorf("vector %d: expected %d components, got %d: %w",
			id, s.flat.Dimension(), len(vec), domain.ErrDimensionMismatch)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.flat.Vector(id); exists {
		return fmt.Errorf("vector %d: %w", id, domain.ErrDuplicateID)
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(vec)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketVectors).Put(keyFromID(id), data)
	})
	if err != nil {
		return err
	}
	return s.flat.Insert(id, vec)
}

func (s *BoltVectors) Search(vec []float32, k int) ([]index.Match, error) {
	return s.flat.Search(vec, k)
}

func (s *BoltVectors) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.flat.Vector(id); !exists {
		return fmt.Errorf("vector %d: %w", id, domain.ErrNotFound)
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVectors).Delete(keyFromID(id))
	})
	if err != nil {
		return err
	}
	return s.flat.Remove(id)
}

func (s *BoltVectors) Size() int {
	return s.flat.Size()
}

func (s *BoltVectors) IDs() []int64 {
	return s.flat.IDs()
}

// Vector returns a copy of the stored vector.
func (s *BoltVectors) Vector(id int64) ([]float32, bool) {
	return s.flat.Vector(id)
}

// Close closes the bbolt handle if this store opened it; a handle shared
// with the note repository is left to its owner.
func (s *BoltVectors) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
