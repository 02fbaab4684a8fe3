package index

import (
	"errors"
	"testing"

	"semnotes/internal/domain"
)

func TestFlatInsertAndSearch(t *testing.T) {
	f := NewFlat(2)

	if err := f.Insert(1, []float32{1, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Insert(2, []float32{0.9, 0.1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Insert(3, []float32{0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := f.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	wantOrder := []int64{1, 2, 3}
	for i, want := range wantOrder {
		if matches[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, matches[i].ID)
		}
	}

	if matches[0].Distance != 0 {
		t.Errorf("exact match should have distance 0, got %f", matches[0].Distance)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Distance < matches[i-1].Distance {
			t.Errorf("distances not non-decreasing at position %d", i)
		}
	}
}

func TestFlatTieBreakByID(t *testing.T) {
	f := NewFlat(2)

	// Identical vectors under different ids: order must be by ascending id.
	if err := f.Insert(7, []float32{0.5, 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := f.Insert(3, []float32{0.5, 0.5}); err != nil {
		t.Fatal(err)
	}

	matches, err := f.Search([]float32{0.5, 0.5}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches[0].ID != 3 || matches[1].ID != 7 {
		t.Errorf("expected tie broken by id [3 7], got [%d %d]", matches[0].ID, matches[1].ID)
	}
}

func TestFlatKLargerThanSize(t *testing.T) {
	f := NewFlat(2)
	f.Insert(1, []float32{1, 0})
	f.Insert(2, []float32{0, 1})

	matches, err := f.Search([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected all 2 stored vectors, got %d", len(matches))
	}
}

func TestFlatDimensionMismatch(t *testing.T) {
	f := NewFlat(3)

	if err := f.Insert(1, []float32{1, 0}); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch on insert, got %v", err)
	}
	if f.Size() != 0 {
		t.Errorf("failed insert must not change state, size=%d", f.Size())
	}

	if _, err := f.Search([]float32{1, 0}, 1); !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch on search, got %v", err)
	}
}

func TestFlatDuplicateID(t *testing.T) {
	f := NewFlat(2)
	if err := f.Insert(1, []float32{1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := f.Insert(1, []float32{0, 1}); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if f.Size() != 1 {
		t.Errorf("expected size 1, got %d", f.Size())
	}
}

func TestFlatInvalidK(t *testing.T) {
	f := NewFlat(2)
	f.Insert(1, []float32{1, 0})

	if _, err := f.Search([]float32{1, 0}, 0); !errors.Is(err, domain.ErrInvalidK) {
		t.Errorf("expected ErrInvalidK for k=0, got %v", err)
	}
	if _, err := f.Search([]float32{1, 0}, -1); !errors.Is(err, domain.ErrInvalidK) {
		t.Errorf("expected ErrInvalidK for k=-1, got %v", err)
	}
}

func TestFlatRemove(t *testing.T) {
	f := NewFlat(2)
	f.Insert(1, []float32{1, 0})

	if err := f.Remove(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Size() != 0 {
		t.Errorf("expected empty index after remove, size=%d", f.Size())
	}
	if err := f.Remove(1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFlatInsertCopiesVector(t *testing.T) {
	f := NewFlat(2)
	vec := []float32{1, 0}
	f.Insert(1, vec)

	// Mutating the caller's slice must not affect the stored vector.
	vec[0] = 99

	matches, err := f.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if matches[0].Distance != 0 {
		t.Errorf("stored vector was aliased to caller slice, distance=%f", matches[0].Distance)
	}
}

func TestFlatIDsSorted(t *testing.T) {
	f := NewFlat(1)
	for _, id := range []int64{5, 1, 9, 3} {
		if err := f.Insert(id, []float32{float32(id)}); err != nil {
			t.Fatal(err)
		}
	}

	ids := f.IDs()
	want := []int64{1, 3, 5, 9}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], ids[i])
		}
	}
}
