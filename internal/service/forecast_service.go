package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/metrics"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
)

// ErrInvalidPayload means the provider answered with a body that is not JSON.
var ErrInvalidPayload = errors.New("invalid upstream payload")

type ForecastServiceInterface interface {
	GetForecast(ctx context.Context, query string) (*repository.UpstreamResponse, error)
	GetUsage(ctx context.Context, day time.Time) (*model.UsageReport, error)
}

type ForecastService struct {
	ForecastRepo repository.ForecastRepository
	UsageRepo    repository.UsageRepository
	Metrics      *metrics.Metrics
	Now          func() time.Time
}

// NewForecastService wires the service. Usage accounting is disabled when
// usage is nil; metrics are skipped when m is nil.
func NewForecastService(forecast repository.ForecastRepository, usage repository.UsageRepository, m *metrics.Metrics) *ForecastService {
	return &ForecastService{
		ForecastRepo: forecast,
		UsageRepo:    usage,
		Metrics:      m,
		Now:          time.Now,
	}
}

// GetForecast relays one upstream call. A non-2xx upstream answer is not an
// error: it comes back as-is for the caller to relay. The body must still be
// JSON, whatever the status.
func (s *ForecastService) GetForecast(ctx context.Context, query string) (*repository.UpstreamResponse, error) {
	start := s.now()
	resp, err := s.ForecastRepo.GetForecast(ctx, query)
	if err != nil {
		if !errors.Is(err, repository.ErrAPIKeyMissing) {
			s.account(ctx, start, model.OutcomeTransportError)
		}
		return nil, err
	}

	if !json.Valid(resp.Body) {
		s.account(ctx, start, model.OutcomeTransportError)
		return nil, fmt.Errorf("%w: status %d with %d byte non-JSON body", ErrInvalidPayload, resp.StatusCode, len(resp.Body))
	}

	if resp.OK() {
		s.account(ctx, start, model.OutcomeSuccess)
	} else {
		s.account(ctx, start, model.OutcomeUpstreamError)
	}
	return resp, nil
}

func (s *ForecastService) GetUsage(ctx context.Context, day time.Time) (*model.UsageReport, error) {
	if s.UsageRepo == nil {
		return nil, repository.ErrUsageDisabled
	}
	return s.UsageRepo.Report(ctx, day)
}

// account never fails the request; a broken usage store only costs a log line.
func (s *ForecastService) account(ctx context.Context, start time.Time, outcome model.Outcome) {
	now := s.now()
	s.Metrics.ObserveUpstream(outcome, now.Sub(start))
	if s.UsageRepo == nil {
		return
	}
	if err := s.UsageRepo.Record(context.WithoutCancel(ctx), now, outcome); err != nil {
		config.GetLogger().Warnw("Recording upstream usage failed", "outcome", outcome, "error", err)
	}
}

func (s *ForecastService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
