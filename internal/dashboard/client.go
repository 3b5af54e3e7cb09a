package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

var (
	ErrCityNotFound = errors.New("city not found")
	ErrFetch        = errors.New("fetch failed")
)

// Fetcher loads a forecast for a free-form query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (*model.ForecastResponse, error)
}

// ProxyClient talks to the weather proxy's /api/weather endpoint.
type ProxyClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewProxyClient(baseURL string, httpClient ...*http.Client) *ProxyClient {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &ProxyClient{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Fetch wraps ErrCityNotFound for any non-2xx answer and ErrFetch for
// transport or decode failures.
func (c *ProxyClient) Fetch(ctx context.Context, query string) (*model.ForecastResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/weather?query="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrCityNotFound, resp.StatusCode)
	}

	var forecast model.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("%w: decoding body: %v", ErrFetch, err)
	}
	return &forecast, nil
}

// MessageFor is the user-facing text for a Fetch error.
func MessageFor(err error) string {
	if errors.Is(err, ErrCityNotFound) {
		return MsgCityNotFound
	}
	return MsgFetchFailed
}
