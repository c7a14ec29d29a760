package output

import (
	"context"

	"omtnames/internal/domain/entities"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entities.Feature) error
	FindByID(ctx context.Context, id int64) (*entities.Feature, error)
	FindUnresolved(ctx context.Context, afterID int64, limit int) ([]entities.Feature, error)
	SaveNames(ctx context.Context, feature *entities.Feature) error
	CountUnresolved(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
