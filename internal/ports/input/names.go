package input

import (
	"context"
	"io"

	"omtnames/internal/domain/entities"
)

type NameUseCase interface {
	Resolve(tags entities.Tags) entities.Names
	ResolveWithoutTranslations(tags entities.Tags) entities.Names
}

type FeatureUseCase interface {
	ResolveStream(ctx context.Context, r io.Reader, w io.Writer) (Summary, error)
	ResolveBatch(ctx context.Context) (Summary, error)
}

// Summary reports the outcome of one resolution run.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
}
