package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
)

const (
	msgQueryRequired = "Query parameter required"
	msgFetchFailed   = "Failed to fetch weather data"
	msgUsageDisabled = "Usage accounting disabled"
)

type forecastQuery struct {
	Query string `validate:"required"`
}

type usageQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

type ForecastHandler struct {
	ForecastService service.ForecastServiceInterface
	validate        *validator.Validate
}

func NewForecastHandler(svc service.ForecastServiceInterface) *ForecastHandler {
	return &ForecastHandler{
		ForecastService: svc,
		validate:        validator.New(),
	}
}

func (h *ForecastHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		config.GetLogger().Errorw("could not encode json", "error", err)
	}
}

// HandleForecast relays GET /api/weather?query= to the provider. Upstream
// status and body pass through untouched, errors included.
func (h *ForecastHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	req := forecastQuery{Query: r.URL.Query().Get("query")}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSONResponse(w, http.StatusBadRequest, model.ErrorResponse{Error: msgQueryRequired})
		return
	}

	resp, err := h.ForecastService.GetForecast(r.Context(), req.Query)
	if err != nil {
		config.GetLogger().Errorw("Weather API error", "error", err)
		h.writeJSONResponse(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   msgFetchFailed,
			Details: err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		config.GetLogger().Warnw("could not relay upstream body", "error", err)
	}
}

// HandleUsage reports upstream call counts for ?date=YYYY-MM-DD (UTC),
// defaulting to today.
func (h *ForecastHandler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	req := usageQuery{Date: r.URL.Query().Get("date")}
	if err := h.validate.Struct(req); err != nil {
		errMsg := "Invalid 'date' query parameter, expected YYYY-MM-DD"
		h.writeJSONResponse(w, http.StatusBadRequest, model.Response{Error: &errMsg, Message: "Error"})
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		day, _ = time.Parse(time.DateOnly, req.Date)
	}

	report, err := h.ForecastService.GetUsage(r.Context(), day)
	switch {
	case errors.Is(err, repository.ErrUsageDisabled):
		errMsg := msgUsageDisabled
		h.writeJSONResponse(w, http.StatusServiceUnavailable, model.Response{Error: &errMsg, Message: "Error"})
	case err != nil:
		config.GetLogger().Errorw("Reading usage failed", "error", err)
		errMsg := "Failed to read usage"
		h.writeJSONResponse(w, http.StatusInternalServerError, model.Response{Error: &errMsg, Message: "Error"})
	default:
		h.writeJSONResponse(w, http.StatusOK, model.Response{Data: report, Message: "Success"})
	}
}
