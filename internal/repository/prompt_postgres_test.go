package repository

import (
	"io/fs"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToEntityQualityWeights(t *testing.T) {
	id := uuid.New()
	updated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rec := toEntityQualityWeights(&qualityWeightsRow{
		ID:                 pgtype.UUID{Bytes: id, Valid: true},
		Name:               "launch",
		BrandVoice:         0.4,
		KeywordIntegration: 0.3,
		GEOOptimization:    0.2,
		FAQQuality:         0.1,
		UpdatedAt:          pgtype.Timestamptz{Time: updated, Valid: true},
	})

	assert.Equal(t, id.String(), rec.ID)
	assert.Equal(t, "launch", rec.Name)
	assert.InDelta(t, 0.4, rec.Weights.BrandVoice, 1e-9)
	assert.InDelta(t, 0.1, rec.Weights.FAQQuality, 1e-9)
	assert.True(t, rec.UpdatedAt.Equal(updated))
}

func TestToEntitySystemPrompt(t *testing.T) {
	id := uuid.New()

	rec := toEntitySystemPrompt(&systemPromptRow{
		ID:      pgtype.UUID{Bytes: id, Valid: true},
		Name:    "geo",
		Version: 4,
		Content: "prompt",
	})

	assert.Equal(t, id.String(), rec.ID)
	assert.Equal(t, 4, rec.Version)
	assert.Equal(t, "prompt", rec.Content)
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)
	assert.Len(t, downs, len(names))
}
