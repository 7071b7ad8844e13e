package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/Nazarious-ucu/weather-dashboard/internal/models"
)

// ErrCityNotFound is returned by ResolveCity when the provider has no match
// for a name.
var ErrCityNotFound = errors.New("city not found")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOpenWeatherMap talks to the OpenWeatherMap current-weather endpoint:
// snapshots by city id and name-to-id resolution.
type ClientOpenWeatherMap struct {
	apiKey string
	apiURL string
	client HTTPClient
	clock  clockwork.Clock
	logger *log.Logger
}

func NewClientOpenWeatherMap(
	apiKey, apiURL string,
	httpClient HTTPClient,
	clock clockwork.Clock,
	logger *log.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{
		apiKey: apiKey,
		apiURL: apiURL,
		client: httpClient,
		clock:  clock,
		logger: logger,
	}
}

// FetchByID retrieves and normalizes the current weather for a city id.
func (c *ClientOpenWeatherMap) FetchByID(ctx context.Context, cityID int) (models.Snapshot, error) {
	query := url.Values{}
	query.Set("id", strconv.Itoa(cityID))

	raw, err := c.get(ctx, query)
	if err != nil {
		return models.Snapshot{}, err
	}

	if !raw.ok() {
		c.logger.Printf("provider error for city %d: cod=%s message=%q", cityID, raw.Cod, raw.Message)
		return models.Snapshot{}, fmt.Errorf("provider returned cod %s", raw.Cod)
	}

	return newSnapshot(cityID, raw, c.clock.Now()), nil
}

// ResolveCity looks a free-text name up and returns the provider's canonical
// id. The provider's first match wins; there is no disambiguation.
func (c *ClientOpenWeatherMap) ResolveCity(ctx context.Context, name string) (int, error) {
	query := url.Values{}
	query.Set("q", name)

	raw, err := c.get(ctx, query)
	if err != nil {
		return 0, err
	}

	if !raw.ok() {
		c.logger.Printf("no match for city %q: cod=%s", name, raw.Cod)
		return 0, ErrCityNotFound
	}

	return raw.ID, nil
}

func (c *ClientOpenWeatherMap) get(ctx context.Context, query url.Values) (apiResponse, error) {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	reqURL := c.apiURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apiResponse{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("request to weather provider failed: %v", err)
		return apiResponse{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Printf("failed to close response body: %v", cerr)
		}
	}()

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		// A non-200 with an unreadable body still collapses into one error.
		if resp.StatusCode != http.StatusOK {
			return apiResponse{}, fmt.Errorf("provider status %s", resp.Status)
		}
		c.logger.Printf("failed to decode provider response: %v", err)
		return apiResponse{}, err
	}

	if resp.StatusCode != http.StatusOK && raw.ok() {
		// Trust the transport status over an inconsistent body.
		return apiResponse{}, fmt.Errorf("provider status %s", resp.Status)
	}

	return raw, nil
}
