package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
)

// Custom error types
var (
	ErrAPIKeyMissing = errors.New("API key missing")
	ErrExternalAPI   = errors.New("external API error")
)

// UpstreamResponse is the provider's reply, kept byte-for-byte.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the provider answered with a 2xx status.
func (r *UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// ForecastRepository defines the interface for upstream forecast access
type ForecastRepository interface {
	GetForecast(ctx context.Context, query string) (*UpstreamResponse, error)
}

// forecastRepository implements ForecastRepository against weatherapi.com
type forecastRepository struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	days       int
	aqi        string
}

// NewForecastRepository creates a repository that signs every upstream
// request with apiKey. The default client carries no timeout override.
func NewForecastRepository(apiKey string, httpClient ...*http.Client) ForecastRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &forecastRepository{
		httpClient: client,
		apiKey:     apiKey,
		baseURL:    config.GetUpstreamBaseURL(),
		days:       config.GetForecastDays(),
		aqi:        config.GetAirQuality(),
	}
}

// GetForecast issues exactly one upstream request. Any HTTP status is a
// successful call from the repository's point of view; only transport and
// read failures are errors.
func (r *forecastRepository) GetForecast(ctx context.Context, query string) (*UpstreamResponse, error) {
	if r.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.forecastURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAPI, scrub(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalAPI, scrub(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrExternalAPI, err)
	}

	return &UpstreamResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

func (r *forecastRepository) forecastURL(query string) string {
	values := url.Values{}
	values.Set("key", r.apiKey)
	values.Set("q", query)
	values.Set("days", strconv.Itoa(r.days))
	values.Set("aqi", r.aqi)
	return r.baseURL + "/forecast.json?" + values.Encode()
}

// scrub drops the request URL from url.Error values; the URL carries the key.
func scrub(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
