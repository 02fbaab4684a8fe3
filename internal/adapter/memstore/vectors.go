package memstore

import "semnotes/internal/index"

// MemoryVectors is the flat index with no persistence behind it.
type MemoryVectors struct {
	*index.Flat
}

func NewMemoryVectors(dimension int) *MemoryVectors {
	return &MemoryVectors{Flat: index.NewFlat(dimension)}
}

func (v *MemoryVectors) Close() error {
	return nil
}
