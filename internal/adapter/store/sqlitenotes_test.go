package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"semnotes/internal/domain"
)

func openTestSQLite(t *testing.T) (*SQLiteNotes, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	notes, err := NewSQLiteNotes(path)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	return notes, path
}

func TestSQLiteNotesInsertGet(t *testing.T) {
	notes, _ := openTestSQLite(t)
	defer notes.Close()

	createdAt := time.Unix(1700000000, 0)
	if err := notes.Insert(1, "first note", createdAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	note, err := notes.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Content != "first note" {
		t.Errorf("expected content %q, got %q", "first note", note.Content)
	}
	if !note.CreatedAt.Equal(createdAt) {
		t.Errorf("expected createdAt %v, got %v", createdAt, note.CreatedAt)
	}

	if err := notes.Insert(1, "again", createdAt); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if _, err := notes.Get(42); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteNotesGetAllOrdered(t *testing.T) {
	notes, _ := openTestSQLite(t)
	defer notes.Close()

	now := time.Now()
	for _, id := range []int64{5, 2, 9} {
		if err := notes.Insert(id, "note", now); err != nil {
			t.Fatal(err)
		}
	}

	all, err := notes.GetAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []int64{2, 5, 9} {
		if all[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, all[i].ID)
		}
	}
}

func TestSQLiteNotesNextIDSeededFromHighest(t *testing.T) {
	notes, path := openTestSQLite(t)

	if err := notes.Insert(4, "a", time.Now()); err != nil {
		t.Fatal(err)
	}
	notes.Close()

	reopened, err := NewSQLiteNotes(path)
	if err != nil {
		t.Fatalf("failed to reopen: %v", err)
	}
	defer reopened.Close()

	next, _ := reopened.NextID()
	if next != 5 {
		t.Errorf("expected next id 5 after reopen, got %d", next)
	}
}

func TestSQLiteNotesDelete(t *testing.T) {
	notes, _ := openTestSQLite(t)
	defer notes.Close()

	notes.Insert(1, "a", time.Now())
	if err := notes.Delete(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := notes.Delete(1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
