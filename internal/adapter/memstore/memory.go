package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"semnotes/internal/domain"
)

// MemoryNotes is an in-memory note repository. Nothing survives the process;
// it backs tests and ephemeral runs.
type MemoryNotes struct {
	mu     sync.RWMutex
	notes  map[int64]domain.Note
	lastID int64
}

func NewMemoryNotes() *MemoryNotes {
	return &MemoryNotes{notes: make(map[int64]domain.Note)}
}

func (s *MemoryNotes) Insert(id int64, content string, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[id]; exists {
		return fmt.Errorf("note %d: %w", id, domain.ErrDuplicateID)
	}
	s.notes[id] = domain.Note{ID: id, Content: content, CreatedAt: createdAt}
	return nil
}

func (s *MemoryNotes) Get(id int64) (domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[id]
	if !ok {
		return domain.Note{}, fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	return note, nil
}

func (s *MemoryNotes) GetAll() ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make([]domain.Note, 0, len(s.notes))
	for _, note := range s.notes {
		notes = append(notes, note)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *MemoryNotes) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID, nil
}

func (s *MemoryNotes) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.notes[id]; !exists {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryNotes) Close() error {
	return nil
}
