package domain

import "time"

// Note is a stored piece of free text. IDs are assigned monotonically by the
// repository and are never reused, so the id space may contain gaps after
// deletions.
type Note struct {
	ID        int64
	Content   string
	CreatedAt time.Time
}

// ScoredNote is a search hit: the note plus its squared Euclidean distance
// from the query embedding. Smaller is closer.
type ScoredNote struct {
	Note     Note
	Distance float64
}
