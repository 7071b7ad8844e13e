package weather_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/cache"
	"github.com/Nazarious-ucu/weather-dashboard/internal/services/weather"
)

// countingFetcher counts provider calls so cache behavior is observable.
type countingFetcher struct {
	fetchCalls   int
	resolveCalls int
	snap         models.Snapshot
	err          error
}

func (f *countingFetcher) FetchByID(_ context.Context, cityID int) (models.Snapshot, error) {
	f.fetchCalls++
	if f.err != nil {
		return models.Snapshot{}, f.err
	}
	snap := f.snap
	snap.CityID = cityID
	return snap, nil
}

func (f *countingFetcher) ResolveCity(_ context.Context, _ string) (int, error) {
	f.resolveCalls++
	if f.err != nil {
		return 0, f.err
	}
	return f.snap.CityID, nil
}

const snapshotTTL = 300 * time.Second

func newCachedService(
	fetcher *countingFetcher,
) (*weather.Service, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	snapCache := cache.NewMemory[models.Snapshot](clock, snapshotTTL)
	svc := weather.NewService(fetcher, snapCache, log.New(io.Discard, "", 0))
	return svc, clock
}

func TestServiceByID_SecondFetchWithinTTLHitsCache(t *testing.T) {
	fetcher := &countingFetcher{snap: models.Snapshot{Name: "Kyiv", Temp: 20.5}}
	svc, clock := newCachedService(fetcher)

	first, err := svc.ByID(context.Background(), 703448)
	require.NoError(t, err)

	clock.Advance(snapshotTTL - time.Second)

	second, err := svc.ByID(context.Background(), 703448)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.fetchCalls, "second fetch within TTL must not reach the provider")
	assert.Equal(t, first, second)
}

func TestServiceByID_ExpiredEntryRefetchesOnce(t *testing.T) {
	fetcher := &countingFetcher{snap: models.Snapshot{Name: "Kyiv"}}
	svc, clock := newCachedService(fetcher)

	_, err := svc.ByID(context.Background(), 703448)
	require.NoError(t, err)

	clock.Advance(snapshotTTL)

	_, err = svc.ByID(context.Background(), 703448)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.fetchCalls, "expiry must trigger exactly one refetch")
}

func TestServiceByID_DistinctCitiesAreCachedSeparately(t *testing.T) {
	fetcher := &countingFetcher{snap: models.Snapshot{Name: "somewhere"}}
	svc, _ := newCachedService(fetcher)

	_, err := svc.ByID(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.ByID(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.fetchCalls)
}

func TestServiceByID_FailedFetchWritesNothing(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("provider returned cod 404")}
	svc, _ := newCachedService(fetcher)

	_, err := svc.ByID(context.Background(), 703448)
	require.Error(t, err)

	// A second call must miss again: the failure was not cached.
	_, err = svc.ByID(context.Background(), 703448)
	require.Error(t, err)
	assert.Equal(t, 2, fetcher.fetchCalls)
}

func TestServiceByID_RecoversAfterProviderComesBack(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("timeout")}
	svc, _ := newCachedService(fetcher)

	_, err := svc.ByID(context.Background(), 703448)
	require.Error(t, err)

	fetcher.err = nil
	fetcher.snap = models.Snapshot{Name: "Kyiv"}

	snap, err := svc.ByID(context.Background(), 703448)
	require.NoError(t, err)
	assert.Equal(t, "Kyiv", snap.Name)
}

func TestServiceResolve_PassesThrough(t *testing.T) {
	fetcher := &countingFetcher{snap: models.Snapshot{CityID: 703448}}
	svc, _ := newCachedService(fetcher)

	id, err := svc.Resolve(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, 703448, id)

	// Name lookups are never cached.
	_, err = svc.Resolve(context.Background(), "Kyiv")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.resolveCalls)
}
