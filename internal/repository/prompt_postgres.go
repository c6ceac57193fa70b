package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const (
	activeSystemPromptQuery = `
SELECT id, name, version, content, updated_at
FROM system_prompts
WHERE is_active
ORDER BY updated_at DESC
LIMIT 1`

	activeQualityWeightsQuery = `
SELECT id, name, brand_voice, keyword_integration, geo_optimization, faq_quality, updated_at
FROM quality_weights
WHERE is_active
ORDER BY updated_at DESC
LIMIT 1`
)

// PromptPostgres reads the active system prompt and quality weights from PostgreSQL
type PromptPostgres struct {
	db *pgxpool.Pool
}

func NewPromptPostgres(db *pgxpool.Pool) *PromptPostgres {
	return &PromptPostgres{db: db}
}

func (r *PromptPostgres) GetActiveSystemPrompt(ctx context.Context) (*entity.SystemPromptRecord, error) {
	var row systemPromptRow
	err := r.db.QueryRow(ctx, activeSystemPromptQuery).Scan(
		&row.ID,
		&row.Name,
		&row.Version,
		&row.Content,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNoActiveConfig
		}
		return nil, fmt.Errorf("get active system prompt: %w", err)
	}

	return toEntitySystemPrompt(&row), nil
}

func (r *PromptPostgres) GetActiveQualityWeights(ctx context.Context) (*entity.QualityWeightsRecord, error) {
	var row qualityWeightsRow
	err := r.db.QueryRow(ctx, activeQualityWeightsQuery).Scan(
		&row.ID,
		&row.Name,
		&row.BrandVoice,
		&row.KeywordIntegration,
		&row.GEOOptimization,
		&row.FAQQuality,
		&row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNoActiveConfig
		}
		return nil, fmt.Errorf("get active quality weights: %w", err)
	}

	return toEntityQualityWeights(&row), nil
}

type systemPromptRow struct {
	ID        pgtype.UUID
	Name      string
	Version   int32
	Content   string
	UpdatedAt pgtype.Timestamptz
}

type qualityWeightsRow struct {
	ID                 pgtype.UUID
	Name               string
	BrandVoice         float64
	KeywordIntegration float64
	GEOOptimization    float64
	FAQQuality         float64
	UpdatedAt          pgtype.Timestamptz
}

func toEntitySystemPrompt(row *systemPromptRow) *entity.SystemPromptRecord {
	return &entity.SystemPromptRecord{
		ID:        uuid.UUID(row.ID.Bytes).String(),
		Name:      row.Name,
		Version:   int(row.Version),
		Content:   row.Content,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func toEntityQualityWeights(row *qualityWeightsRow) *entity.QualityWeightsRecord {
	return &entity.QualityWeightsRecord{
		ID:   uuid.UUID(row.ID.Bytes).String(),
		Name: row.Name,
		Weights: entity.QualityWeights{
			BrandVoice:         row.BrandVoice,
			KeywordIntegration: row.KeywordIntegration,
			GEOOptimization:    row.GEOOptimization,
			FAQQuality:         row.FAQQuality,
		},
		UpdatedAt: row.UpdatedAt.Time,
	}
}
