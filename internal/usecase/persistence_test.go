package usecase

import (
	"path/filepath"
	"testing"
	"time"

	"semnotes/internal/adapter/store"
)

// Round trip through the real bolt stores: everything added before close is
// identical after reopen, and search still ranks the same.
func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	embedder := &stubEmbedder{dim: 2, vecs: map[string][]float32{
		"Morning run in the park":   {1, 0},
		"Team meeting about budget": {0, 1},
		"exercise":                  {1, 0},
	}}

	notes, err := store.NewBoltNotes(path)
	if err != nil {
		t.Fatal(err)
	}
	vectors, err := store.NewBoltVectors(notes.DB(), 2)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(notes, vectors, embedder)

	runID, err := svc.Add("Morning run in the park")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add("Team meeting about budget"); err != nil {
		t.Fatal(err)
	}
	if err := notes.Close(); err != nil {
		t.Fatal(err)
	}

	reopenedNotes, err := store.NewBoltNotes(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopenedNotes.Close()
	reopenedVectors, err := store.NewBoltVectors(reopenedNotes.DB(), 2)
	if err != nil {
		t.Fatal(err)
	}

	// Stores were consistent at close; reconciliation must be a no-op.
	result, err := Reconcile(reopenedNotes, reopenedVectors, embedder, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rebuilt != 0 || result.Orphans != 0 {
		t.Errorf("expected clean reload, got %+v", result)
	}

	svc2 := NewService(reopenedNotes, reopenedVectors, embedder)

	all, err := svc2.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notes after reload, got %d", len(all))
	}
	if all[0].Content != "Morning run in the park" {
		t.Errorf("note content changed across reload: %q", all[0].Content)
	}

	hits, err := svc2.Search("exercise", 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].Note.ID != runID || hits[0].Distance != 0 {
		t.Errorf("expected run note at distance 0, got id=%d distance=%f",
			hits[0].Note.ID, hits[0].Distance)
	}
}

// Deleting the vector side simulates a lost index file: reload must rebuild
// embeddings for every note instead of failing startup.
func TestColdStartRebuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.db")
	embedder := &stubEmbedder{dim: 2, vecs: map[string][]float32{
		"survives": {0.3, 0.7},
	}}

	notes, err := store.NewBoltNotes(path)
	if err != nil {
		t.Fatal(err)
	}

	// Note inserted directly: the vector store "file" never existed.
	if err := notes.Insert(1, "survives", time.Now()); err != nil {
		t.Fatal(err)
	}

	vectors, err := store.NewBoltVectors(notes.DB(), 2)
	if err != nil {
		t.Fatal(err)
	}
	defer notes.Close()

	result, err := Reconcile(notes, vectors, embedder, false)
	if err != nil {
		t.Fatal(err)
	}
	if result.Rebuilt != 1 {
		t.Fatalf("expected 1 rebuilt vector, got %d", result.Rebuilt)
	}

	vec, ok := vectors.Vector(1)
	if !ok {
		t.Fatal("vector 1 missing after rebuild")
	}
	if vec[0] != 0.3 || vec[1] != 0.7 {
		t.Errorf("rebuilt vector wrong: %v", vec)
	}
}
