package usecase

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"semnotes/internal/domain"
	"semnotes/internal/port"
)

// Service orchestrates the note repository, the vector index and the
// embedder. Its single invariant: the two stores always hold the same id
// set. Every dual write runs under one critical section; embedding, the
// slow part, runs outside it so searches are not blocked by an in-flight
// model call.
type Service struct {
	repo     port.NoteRepository
	vectors  port.VectorIndex
	embedder port.Embedder

	// guards the dual-write critical sections; reads take the shared side
	mu sync.RWMutex

	now func() time.Time
}

func NewService(repo port.NoteRepository, vectors port.VectorIndex, embedder port.Embedder) *Service {
	return &Service{
		repo:     repo,
		vectors:  vectors,
		embedder: embedder,
		now:      time.Now,
	}
}

// Add embeds content and stores it in both stores under a fresh id.
// If embedding fails, no id is consumed and nothing changes. If the vector
// insert fails after the note insert, the note is rolled back.
func (s *Service) Add(content string) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, domain.ErrEmptyContent
	}

	vec, err := s.embedOne(content)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Both inserts are validated up front (fresh id, correct dimension), so
	// the rollback path below should never run in normal operation.
	if len(vec) != s.embedder.Dimension() {
		return 0, fmt.Errorf("embedder returned %d components, expected %d: %w",
			len(vec), s.embedder.Dimension(), domain.ErrDimensionMismatch)
	}

	id, err := s.repo.NextID()
	if err != nil {
		return 0, err
	}

	createdAt := s.now()
	if err := s.repo.Insert(id, content, createdAt); err != nil {
		return 0, err
	}
	if err := s.vectors.Insert(id, vec); err != nil {
		if rbErr := s.repo.Delete(id); rbErr != nil {
			return 0, fmt.Errorf("vector insert failed (%v) and note rollback failed (%v): %w",
				err, rbErr, domain.ErrConsistency)
		}
		return 0, err
	}
	return id, nil
}

// Search embeds the query and returns the k closest notes ordered by
// ascending distance.
func (s *Service) Search(query string, k int) ([]domain.ScoredNote, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if k <= 0 {
		return nil, fmt.Errorf("k=%d: %w", k, domain.ErrInvalidK)
	}

	vec, err := s.embedOne(query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches, err := s.vectors.Search(vec, k)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ScoredNote, 0, len(matches))
	for _, m := range matches {
		note, err := s.repo.Get(m.ID)
		if err != nil {
			// A vector whose note is missing means the stores diverged.
			// Surface it loudly; this is never a normal miss.
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("vector %d has no note: %w", m.ID, domain.ErrConsistency)
			}
			return nil, err
		}
		results = append(results, domain.ScoredNote{Note: note, Distance: m.Distance})
	}
	return results, nil
}

// GetAll returns every note ordered by ascending id.
func (s *Service) GetAll() ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.GetAll()
}

// Remove deletes a note and its vector.
func (s *Service) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := s.vectors.Remove(id); err != nil {
		if rbErr := s.repo.Insert(id, note.Content, note.CreatedAt); rbErr != nil {
			return fmt.Errorf("vector remove failed (%v) and note restore failed (%v): %w",
				err, rbErr, domain.ErrConsistency)
		}
		return err
	}
	return nil
}

// Count returns the number of stored notes.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vectors.Size()
}

func (s *Service) embedOne(text string) ([]float32, error) {
	vecs, err := s.embedder.Embed([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one text: %w",
			len(vecs), domain.ErrEmbeddingUnavailable)
	}
	return vecs[0], nil
}
