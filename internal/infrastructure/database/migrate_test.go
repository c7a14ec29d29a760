package database

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMigrations_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := RunMigrations("postgres://localhost:5432/omtnames", dir, slog.Default())
	assert.ErrorContains(t, err, "MIGRATIONS_PATH")
}

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(t.Context(), "postgres://%zz", 4, slog.Default())
	assert.ErrorContains(t, err, "parse database url")
}
