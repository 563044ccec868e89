package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/finplan/internal/adapter/http/dto"
	"github.com/iho/finplan/internal/infrastructure/metrics"
	"github.com/iho/finplan/internal/ledger"
)

// DefaultForecastMonths is the horizon used when the request omits one.
const DefaultForecastMonths = 6

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	ProjectCashFlow(months int, sc *ledger.Scenario) []ledger.MonthProjection
	HistoricalAverage(month time.Time, lookback int, sc *ledger.Scenario) ledger.MonthlyFlow
	MonthlyReport(year int, month time.Month) ledger.MonthlyReport
	YearlyReport(year int) ledger.YearlyReport
	NetWorthHistory() []ledger.NetWorthPoint
	TrendAnalysis() ledger.TrendAnalysis
	CategoryAnalysis(months int) []ledger.CategoryAnalysisEntry
}

// ForecastHandler handles forecast and report HTTP requests.
type ForecastHandler struct {
	svc ForecastService
	m   *metrics.Metrics
	now func() time.Time
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(svc ForecastService, m *metrics.Metrics) *ForecastHandler {
	return &ForecastHandler{svc: svc, m: m, now: time.Now}
}

// Project forecasts future cash flow, optionally under a scenario.
func (h *ForecastHandler) Project(w http.ResponseWriter, r *http.Request) {
	months := parseIntQuery(r, "months", DefaultForecastMonths)

	var sc *ledger.Scenario
	if r.Body != nil && r.ContentLength > 0 {
		var req dto.ScenarioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.Months > 0 {
			months = req.Months
		}
		sc = req.ToScenario()
	}

	start := time.Now()
	projection := h.svc.ProjectCashFlow(months, sc)
	if h.m != nil {
		h.m.ForecastRequests.Observe(time.Since(start).Seconds())
	}
	writeJSON(w, http.StatusOK, dto.NewListResponse(projection))
}

// HistoricalAverage returns the mean monthly flow behind the forecast.
func (h *ForecastHandler) HistoricalAverage(w http.ResponseWriter, r *http.Request) {
	lookback := parseIntQuery(r, "lookback", ledger.DefaultLookbackMonths)
	writeJSON(w, http.StatusOK, h.svc.HistoricalAverage(h.now(), lookback, nil))
}

// MonthlyReport summarizes one calendar month.
func (h *ForecastHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year := parseIntQuery(r, "year", now.Year())
	month := parseIntQuery(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", "month must be between 1 and 12")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.MonthlyReport(year, time.Month(month)))
}

// YearlyReport summarizes one calendar year.
func (h *ForecastHandler) YearlyReport(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", h.now().Year())
	writeJSON(w, http.StatusOK, h.svc.YearlyReport(year))
}

// NetWorthHistory returns the trailing twelve months of net worth.
func (h *ForecastHandler) NetWorthHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.NetWorthHistory()))
}

// Trends compares recent months of income, expenses and net worth.
func (h *ForecastHandler) Trends(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.TrendAnalysis())
}

// Categories breaks down spending by category over a lookback window.
func (h *ForecastHandler) Categories(w http.ResponseWriter, r *http.Request) {
	months := parseIntQuery(r, "months", ledger.DefaultLookbackMonths)
	writeJSON(w, http.StatusOK, dto.NewListResponse(h.svc.CategoryAnalysis(months)))
}
