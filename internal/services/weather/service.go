package weather

import (
	"context"
	"fmt"
	"log"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

type fetcher interface {
	FetchByID(ctx context.Context, cityID int) (models.Snapshot, error)
	ResolveCity(ctx context.Context, name string) (int, error)
}

type cacheClient[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, error)
}

// Service is the read-through snapshot source for the dashboard: cache first,
// provider on miss, cache populated on success. Failures surface as errors
// for the caller to downgrade to per-city warnings. Two concurrent misses for
// the same key may both fetch; last write wins.
type Service struct {
	client fetcher
	cache  cacheClient[models.Snapshot]
	logger *log.Logger
}

func NewService(client fetcher, cache cacheClient[models.Snapshot], logger *log.Logger) *Service {
	return &Service{client: client, cache: cache, logger: logger}
}

func cacheKey(cityID int) string {
	return fmt.Sprintf("weather:%d", cityID)
}

// ByID returns a live snapshot for the city: any cache error counts as a
// miss, a successful fetch is stored before being returned, and a failed
// fetch writes nothing.
func (s *Service) ByID(ctx context.Context, cityID int) (models.Snapshot, error) {
	key := cacheKey(cityID)

	snap, err := s.cache.Get(ctx, key)
	if err == nil {
		return snap, nil
	}

	snap, err = s.client.FetchByID(ctx, cityID)
	if err != nil {
		s.logger.Printf("fetch failed for city %d: %v", cityID, err)
		return models.Snapshot{}, err
	}

	if err := s.cache.Set(ctx, key, snap); err != nil {
		s.logger.Printf("cache set failed for city %d: %v", cityID, err)
	}

	return snap, nil
}

// Resolve passes a free-text city name through to the provider lookup.
func (s *Service) Resolve(ctx context.Context, name string) (int, error) {
	return s.client.ResolveCity(ctx, name)
}
