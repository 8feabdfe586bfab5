package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/providers"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/infrastructure/observability"
)

// ProvidersCacheKey is the single logical key holding the provider directory
// snapshot.
const ProvidersCacheKey = "providers"

// ProviderDirectoryService serves the provider listing through a read-through
// cache. The snapshot is for directory display only and is never consulted
// for availability decisions.
type ProviderDirectoryService struct {
	users      repositories.UserRepository
	cache      providers.CacheProvider
	baseURL    string
	ttlSeconds int
}

// NewProviderDirectoryService creates a new provider directory service
func NewProviderDirectoryService(
	users repositories.UserRepository,
	cache providers.CacheProvider,
	baseURL string,
	ttlSeconds int,
) *ProviderDirectoryService {
	return &ProviderDirectoryService{
		users:      users,
		cache:      cache,
		baseURL:    baseURL,
		ttlSeconds: ttlSeconds,
	}
}

// List returns the provider directory. A cache hit is served verbatim; on a
// miss the directory is read from the store, cached under ProvidersCacheKey
// and returned. Cache failures degrade to the store read.
func (s *ProviderDirectoryService) List(ctx context.Context) ([]entities.ProviderSummary, error) {
	cached, err := s.cache.Get(ctx, ProvidersCacheKey)
	if err == nil {
		var summaries []entities.ProviderSummary
		if err := json.Unmarshal(cached, &summaries); err == nil {
			return summaries, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("failed to unmarshal cached provider directory, refreshing from store")
	} else if !errors.Is(err, providers.ErrCacheMiss) {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Msg("provider directory cache unavailable, falling back to store")
	}

	users, err := s.users.ListProviders(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]entities.ProviderSummary, 0, len(users))
	for _, user := range users {
		summary := entities.ProviderSummary{
			ID:   user.ID,
			Name: user.Name,
		}
		if user.Avatar != nil {
			summary.AvatarURL = user.Avatar.URL(s.baseURL)
		}
		summaries = append(summaries, summary)
	}

	if data, err := json.Marshal(summaries); err == nil {
		if err := s.cache.Set(ctx, ProvidersCacheKey, data, s.ttlSeconds); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Msg("failed to populate provider directory cache")
		}
	}

	return summaries, nil
}

// Invalidate drops the cached snapshot. Any mutation that changes a
// provider's visible summary (name, avatar) must call this, otherwise the
// directory stays stale until the TTL expires.
func (s *ProviderDirectoryService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, ProvidersCacheKey)
}
