package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries holds the SQL used by the repositories.
type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// FeatureRow mirrors a row of osm_feature. Tags and Names hold raw JSON text;
// the json column type keeps object key order.
type FeatureRow struct {
	ID         int64
	Tags       []byte
	Names      []byte
	ResolvedAt pgtype.Timestamptz
}

const createFeature = `
INSERT INTO osm_feature (id, tags)
VALUES ($1, $2::json)
RETURNING id, tags, names, resolved_at`

func (q *Queries) CreateFeature(ctx context.Context, id int64, tags string) (FeatureRow, error) {
	row := q.db.QueryRow(ctx, createFeature, id, tags)
	var f FeatureRow
	err := row.Scan(&f.ID, &f.Tags, &f.Names, &f.ResolvedAt)
	return f, err
}

const getFeatureByID = `
SELECT id, tags, names, resolved_at
FROM osm_feature
WHERE id = $1`

func (q *Queries) GetFeatureByID(ctx context.Context, id int64) (FeatureRow, error) {
	row := q.db.QueryRow(ctx, getFeatureByID, id)
	var f FeatureRow
	err := row.Scan(&f.ID, &f.Tags, &f.Names, &f.ResolvedAt)
	return f, err
}

const listUnresolvedFeatures = `
SELECT id, tags, names, resolved_at
FROM osm_feature
WHERE resolved_at IS NULL AND id > $1
ORDER BY id
LIMIT $2`

func (q *Queries) ListUnresolvedFeatures(ctx context.Context, afterID int64, limit int32) ([]FeatureRow, error) {
	rows, err := q.db.Query(ctx, listUnresolvedFeatures, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FeatureRow
	for rows.Next() {
		var f FeatureRow
		if err := rows.Scan(&f.ID, &f.Tags, &f.Names, &f.ResolvedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateFeatureNames = `
UPDATE osm_feature
SET names = $2::json, resolved_at = $3
WHERE id = $1`

func (q *Queries) UpdateFeatureNames(ctx context.Context, id int64, names string, resolvedAt pgtype.Timestamptz) (int64, error) {
	tag, err := q.db.Exec(ctx, updateFeatureNames, id, names, resolvedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const countUnresolvedFeatures = `
SELECT count(*) FROM osm_feature WHERE resolved_at IS NULL`

func (q *Queries) CountUnresolvedFeatures(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countUnresolvedFeatures)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteFeature = `
DELETE FROM osm_feature WHERE id = $1`

func (q *Queries) DeleteFeature(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteFeature, id)
	return err
}
