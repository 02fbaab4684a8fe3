package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
	"semnotes/internal/domain"
)

// SQLiteNotes is a SQLite-backed note repository. The schema is a single
// table with an integer primary key and a non-null text column; inserts are
// committed before they return.
type SQLiteNotes struct {
	db *sql.DB

	mu     sync.Mutex
	lastID int64
}

// NewSQLiteNotes opens (or creates) the note database at path.
func NewSQLiteNotes(path string) (*SQLiteNotes, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open note db: %w", err)
	}

	// A single writer keeps "database is locked" errors away without a
	// busy-timeout dance.
	db.SetMaxOpenConns(1)

	const schema = `
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create notes table: %w", err)
	}

	s := &SQLiteNotes{db: db}
	row := db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM notes`)
	if err := row.Scan(&s.lastID); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed id counter: %w", err)
	}
	return s, nil
}

func (s *SQLiteNotes) Insert(id int64, content string, createdAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(1) FROM notes WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return fmt.Errorf("note %d: %w", id, domain.ErrDuplicateID)
	}

	_, err = tx.Exec(`INSERT INTO notes (id, content, created_at) VALUES (?, ?, ?)`,
		id, content, createdAt.Unix())
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteNotes) Get(id int64) (domain.Note, error) {
	var (
		content   string
		createdAt int64
	)
	err := s.db.QueryRow(`SELECT content, created_at FROM notes WHERE id = ?`, id).
		Scan(&content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Note{}, err
	}
	return domain.Note{ID: id, Content: content, CreatedAt: time.Unix(createdAt, 0)}, nil
}

func (s *SQLiteNotes) GetAll() ([]domain.Note, error) {
	rows, err := s.db.Query(`SELECT id, content, created_at FROM notes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var (
			id        int64
			content   string
			createdAt int64
		)
		if err := rows.Scan(&id, &content, &createdAt); err != nil {
			return nil, err
		}
		notes = append(notes, domain.Note{
			ID:        id,
			Content:   content,
			CreatedAt: time.Unix(createdAt, 0),
		})
	}
	return notes, rows.Err()
}

func (s *SQLiteNotes) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	return s.lastID, nil
}

func (s *SQLiteNotes) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLiteNotes) Close() error {
	return s.db.Close()
}
