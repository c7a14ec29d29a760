package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"omtnames/internal/domain"
	"omtnames/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func featureToDomain(f FeatureRow) (entities.Feature, error) {
	out := entities.Feature{
		ID:         f.ID,
		ResolvedAt: pgtypeTimestamptzToTime(f.ResolvedAt),
	}
	if err := json.Unmarshal(f.Tags, &out.Tags); err != nil {
		return entities.Feature{}, fmt.Errorf("feature %d tags: %w: %v", f.ID, domain.ErrMalformedFeature, err)
	}
	if len(f.Names) > 0 {
		if err := json.Unmarshal(f.Names, &out.Names); err != nil {
			return entities.Feature{}, fmt.Errorf("feature %d names: %w: %v", f.ID, domain.ErrMalformedFeature, err)
		}
	}
	return out, nil
}

func jsonText(v json.Marshaler) (string, error) {
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
