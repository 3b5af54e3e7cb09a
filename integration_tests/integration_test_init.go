package integrationtest

import (
	"net/http"
	"net/http/httptest"

	"github.com/alicebob/miniredis/v2"

	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/httpapi"
	"github.com/fakhrymubarak/weather-dashboard/internal/metrics"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

const testAPIKey = "test_api_key"

func createMockRedisServer() (*miniredis.Miniredis, error) {
	return miniredis.Run()
}

// setupIntegrationTestServer wires the proxy the way main does: real
// repositories, usage accounting on whatever redis.addr points at.
func setupIntegrationTestServer(apiKey string) *httptest.Server {
	m := metrics.New()
	svc := service.NewForecastService(
		repository.NewForecastRepository(apiKey),
		repository.NewUsageRepository(),
		m,
	)
	return httptest.NewServer(httpapi.NewRouter(handler.NewForecastHandler(svc), m))
}

// mockWeatherAPI imitates weatherapi.com's forecast.json for a few cities.
func mockWeatherAPI() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/v1/forecast.json" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":1005,"message":"API request url is invalid."}}`))
			return
		}
		if r.URL.Query().Get("key") != testAPIKey {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":2008,"message":"API key has been disabled."}}`))
			return
		}
		body, ok := cityPayloads[r.URL.Query().Get("q")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
}

var cityPayloads = map[string]string{
	"Nairobi": `{"location":{"name":"Nairobi","country":"Kenya","localtime":"2026-10-16 14:05"},` +
		`"current":{"temp_c":24.5,"feelslike_c":25.1,"is_day":1,"condition":{"text":"Partly cloudy","code":1003},"wind_kph":13.3,"wind_dir":"ENE","humidity":47,"vis_km":10.0,"pressure_mb":1019.0},` +
		`"forecast":{"forecastday":[{"date":"2026-10-16","day":{"maxtemp_c":26.5,"mintemp_c":14.2,"condition":{"text":"Sunny","code":1000},"daily_chance_of_rain":0},"astro":{"sunrise":"06:21 AM","sunset":"06:31 PM"}}]}}`,
	"Paris": `{"location":{"name":"Paris","country":"France","localtime":"2026-10-16 13:05"},` +
		`"current":{"temp_c":11.0,"feelslike_c":9.4,"is_day":1,"condition":{"text":"Moderate rain","code":1189}},` +
		`"forecast":{"forecastday":[]}}`,
	"-1.29,36.82": `{"location":{"name":"Nairobi West","country":"Kenya","localtime":"2026-10-16 14:05"},` +
		`"current":{"temp_c":24.0,"is_day":0,"condition":{"text":"Clear","code":1000}},"forecast":{"forecastday":[]}}`,
}
