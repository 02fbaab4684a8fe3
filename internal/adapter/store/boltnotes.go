package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
	"semnotes/internal/domain"
)

var bucketNotes = []byte("notes")

// BoltNotes is a bbolt-backed note repository. Keys are big-endian uint64
// ids, so bucket iteration order is ascending id order. Every insert is
// committed before it returns.
type BoltNotes struct {
	db *bbolt.DB

	mu     sync.Mutex
	lastID int64
}

type noteMeta struct {
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

// NewBoltNotes opens (or creates) the note database at path. The id counter
// is seeded from the highest persisted id.
func NewBoltNotes(path string) (*BoltNotes, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open note db: %w", err)
	}

	s := &BoltNotes{db: db}
	err = db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketNotes)
		if err != nil {
			return fmt.Errorf("failed to create notes bucket: %w", err)
		}
		if k, _ := b.Cursor().Last(); k != nil {
			s.lastID = idFromKey(k)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying bbolt handle so the vector store can share the
// same file.
func (s *BoltNotes) DB() *bbolt.DB {
	return s.db
}

func (s *BoltNotes) Insert(id int64, content string, createdAt time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		key := keyFromID(id)
		if b.Get(key) != nil {
			return fmt.Errorf("note %d: %w", id, domain.ErrDuplicateID)
		}
		data, err := json.Marshal(noteMeta{
			Content:   content,
			CreatedAt: createdAt.Unix(),
		})
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

func (s *BoltNotes) Get(id int64) (domain.Note, error) {
	var note domain.Note
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketNotes).Get(keyFromID(id))
		if data == nil {
			return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
		}
		var meta noteMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("note %d: %v: %w", id, err, domain.ErrCorruptState)
		}
		note = domain.Note{
			ID:        id,
			Content:   meta.Content,
			CreatedAt: time.Unix(meta.CreatedAt, 0),
		}
		return nil
	})
	return note, err
}

func (s *BoltNotes) GetAll() ([]domain.Note, error) {
	var notes []domain.Note
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketNotes).ForEach(func(k, v []byte) error {
			var meta noteMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return fmt.Errorf("note %d: %v: %w", idFromKey(k), err, domain.ErrCorruptState)
			}
			notes = append(notes, domain.Note{
				ID:        idFromKey(k),
				Content:   meta.Content,
				CreatedAt: time.Unix(meta.CreatedAt, 0),
			})
			return nil
		})
	})
	return notes, err
}

func (s *BoltNotes) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID, nil
}

func (s *BoltNotes) Delete(id int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		key := keyFromID(id)
		if b.Get(key) == nil {
			return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
		}
		return b.Delete(key)
	})
}

func (s *BoltNotes) Close() error {
	return s.db.Close()
}

func keyFromID(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id))
	return key
}

func idFromKey(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key))
}
