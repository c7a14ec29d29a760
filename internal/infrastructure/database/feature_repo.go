package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"omtnames/internal/domain"
	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/output"
)

var _ output.FeatureRepository = (*FeatureRepository)(nil)

// FeatureRepository implements output.FeatureRepository using pgx.
type FeatureRepository struct {
	q *Queries
}

// NewFeatureRepository creates a FeatureRepository.
func NewFeatureRepository(q *Queries) *FeatureRepository {
	return &FeatureRepository{q: q}
}

func (r *FeatureRepository) Create(ctx context.Context, feature *entities.Feature) error {
	tags, err := jsonText(feature.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	row, err := r.q.CreateFeature(ctx, feature.ID, tags)
	if err != nil {
		return fmt.Errorf("create feature: %w", err)
	}
	feature.ResolvedAt = pgtypeTimestamptzToTime(row.ResolvedAt)
	return nil
}

func (r *FeatureRepository) FindByID(ctx context.Context, id int64) (*entities.Feature, error) {
	row, err := r.q.GetFeatureByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get feature %d: %w", id, domain.ErrFeatureNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feature by id: %w", err)
	}
	f, err := featureToDomain(row)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindUnresolved returns up to limit unresolved features with an id greater
// than afterID, ordered by id.
func (r *FeatureRepository) FindUnresolved(ctx context.Context, afterID int64, limit int) ([]entities.Feature, error) {
	rows, err := r.q.ListUnresolvedFeatures(ctx, afterID, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list unresolved features: %w", err)
	}
	out := make([]entities.Feature, 0, len(rows))
	for i := range rows {
		f, err := featureToDomain(rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *FeatureRepository) SaveNames(ctx context.Context, feature *entities.Feature) error {
	names, err := jsonText(feature.Names)
	if err != nil {
		return fmt.Errorf("encode names: %w", err)
	}
	n, err := r.q.UpdateFeatureNames(ctx, feature.ID, names, timeToPgtypeTimestamptz(feature.ResolvedAt))
	if err != nil {
		return fmt.Errorf("save names: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("save names for feature %d: %w", feature.ID, domain.ErrFeatureNotFound)
	}
	return nil
}

func (r *FeatureRepository) CountUnresolved(ctx context.Context) (int64, error) {
	n, err := r.q.CountUnresolvedFeatures(ctx)
	if err != nil {
		return 0, fmt.Errorf("count unresolved features: %w", err)
	}
	return n, nil
}

func (r *FeatureRepository) Delete(ctx context.Context, id int64) error {
	if err := r.q.DeleteFeature(ctx, id); err != nil {
		return fmt.Errorf("delete feature: %w", err)
	}
	return nil
}
