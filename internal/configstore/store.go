// Package configstore serves the versioned prompt and weight configuration
// each generation request runs with.
package configstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
)

const (
	snapshotKey    = "snapshot"
	DefaultVersion = "default"
)

// DefaultSystemPrompt is used when no active prompt is stored.
const DefaultSystemPrompt = `You are a senior marketing copywriter for a global consumer electronics brand.
Write YouTube descriptions, chapter timestamps, hashtags and FAQs that are accurate, benefit-led and easy for answer engines to quote.
Never invent specifications, prices or availability. Use only facts from the transcript, the keywords and the guideline excerpts.
Follow the weights given for each input section and answer only with the requested JSON object.`

type PromptRepository interface {
	GetActiveSystemPrompt(ctx context.Context) (*entity.SystemPromptRecord, error)
	GetActiveQualityWeights(ctx context.Context) (*entity.QualityWeightsRecord, error)
}

// Store caches one snapshot for the configured TTL. Snapshots are never
// mutated after they are handed out.
type Store struct {
	repo  PromptRepository
	cache *cache.Cache
	mu    sync.Mutex
	now   func() time.Time
}

// NewStore creates a Store. A nil repo serves the default snapshot.
func NewStore(repo PromptRepository, ttl time.Duration) *Store {
	return &Store{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		now:   time.Now,
	}
}

// Default returns the built-in snapshot.
func Default(loadedAt time.Time) *entity.ConfigSnapshot {
	return &entity.ConfigSnapshot{
		Version:      DefaultVersion,
		SystemPrompt: DefaultSystemPrompt,
		Weights:      entity.DefaultQualityWeights(),
		LoadedAt:     loadedAt,
	}
}

// Snapshot returns the cached snapshot, loading it when the cache window has
// passed. A failing store yields the default snapshot.
func (s *Store) Snapshot(ctx context.Context) *entity.ConfigSnapshot {
	if snap, ok := s.cached(); ok {
		return snap
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.cached(); ok {
		return snap
	}

	snap, err := s.load(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "config store unavailable, using default snapshot", zap.Error(err))
		snap = Default(s.now())
	}
	s.cache.SetDefault(snapshotKey, snap)
	return snap
}

// Refresh reloads the snapshot. On failure the cached snapshot is kept and
// the error is returned.
func (s *Store) Refresh(ctx context.Context) (*entity.ConfigSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(snapshotKey, snap)

	ctxzap.Info(ctx, "config snapshot refreshed", zap.String("version", snap.Version))
	return snap, nil
}

func (s *Store) cached() (*entity.ConfigSnapshot, bool) {
	v, ok := s.cache.Get(snapshotKey)
	if !ok {
		return nil, false
	}
	snap, ok := v.(*entity.ConfigSnapshot)
	return snap, ok
}

func (s *Store) load(ctx context.Context) (*entity.ConfigSnapshot, error) {
	snap := Default(s.now())
	if s.repo == nil {
		return snap, nil
	}

	promptVersion := DefaultVersion
	prompt, err := s.repo.GetActiveSystemPrompt(ctx)
	switch {
	case errors.Is(err, entity.ErrNoActiveConfig):
	case err != nil:
		return nil, fmt.Errorf("%w: system prompt: %w", entity.ErrConfigUnavailable, err)
	default:
		snap.SystemPrompt = prompt.Content
		promptVersion = fmt.Sprintf("%s@v%d", prompt.Name, prompt.Version)
	}

	weightsVersion := DefaultVersion
	weights, err := s.repo.GetActiveQualityWeights(ctx)
	switch {
	case errors.Is(err, entity.ErrNoActiveConfig):
	case err != nil:
		return nil, fmt.Errorf("%w: quality weights: %w", entity.ErrConfigUnavailable, err)
	default:
		snap.Weights = weights.Weights
		weightsVersion = weights.Name
	}

	if promptVersion != DefaultVersion || weightsVersion != DefaultVersion {
		snap.Version = fmt.Sprintf("prompt:%s/weights:%s", promptVersion, weightsVersion)
	}
	return snap, nil
}
