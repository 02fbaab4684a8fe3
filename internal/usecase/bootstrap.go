package usecase

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"semnotes/internal/port"
)

// ReconcileResult reports what startup reconciliation did.
type ReconcileResult struct {
	Rebuilt int // notes that were missing a vector and got re-embedded
	Orphans int // vectors without a note that were dropped
}

// Reconcile aligns the id spaces of the two stores at startup. A missing
// vector file is a normal cold start: every note without a vector is
// re-embedded rather than failing the load. Vectors whose note is gone are
// dropped. Embedding failure aborts with no partial state beyond what was
// already reconciled.
func Reconcile(repo port.NoteRepository, vectors port.VectorIndex, embedder port.Embedder, showProgress bool) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	notes, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	noteIDs := make(map[int64]bool, len(notes))
	for _, note := range notes {
		noteIDs[note.ID] = true
	}
	vectorIDs := make(map[int64]bool)
	for _, id := range vectors.IDs() {
		vectorIDs[id] = true
	}

	for id := range vectorIDs {
		if !noteIDs[id] {
			if err := vectors.Remove(id); err != nil {
				return nil, fmt.Errorf("failed to drop orphan vector %d: %w", id, err)
			}
			result.Orphans++
		}
	}

	var missing []int // indexes into notes
	for i, note := range notes {
		if !vectorIDs[note.ID] {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return result, nil
	}

	texts := make([]string, len(missing))
	for i, idx := range missing {
		texts[i] = notes[idx].Content
	}
	vecs, err := embedder.Embed(texts)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild embeddings: %w", err)
	}
	if len(vecs) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d notes", len(vecs), len(missing))
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(missing),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("Rebuilding vectors"),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	for i, idx := range missing {
		if err := vectors.Insert(notes[idx].ID, vecs[i]); err != nil {
			return nil, fmt.Errorf("failed to restore vector for note %d: %w", notes[idx].ID, err)
		}
		result.Rebuilt++
		if bar != nil {
			bar.Add(1)
		}
	}

	return result, nil
}
