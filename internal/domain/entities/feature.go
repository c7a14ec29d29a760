package entities

import "time"

// Feature is a map feature whose names are being resolved.
type Feature struct {
	ID         int64
	Tags       Tags
	Names      Names
	ResolvedAt time.Time // zero = not resolved yet
}

func (f *Feature) IsResolved() bool {
	return !f.ResolvedAt.IsZero()
}
