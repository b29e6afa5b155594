/*
handlers.go - HTTP API handlers for the calculators

PURPOSE:
  Exposes the calculation engines via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the calculator
  packages. No handler holds user state; every response is a pure function
  of its request (plus today's date where one is defaulted).

ENDPOINTS:
  GET    /healthz                      Liveness
  GET    /api/tools                    Calculator catalog (?category=Finance)

  Coast FIRE:
    POST   /api/coast-fire             Compute (+ projection on request)

  Debt snowball:
    POST   /api/debt-snowball          Simulate one strategy
    POST   /api/debt-snowball/compare  Snowball vs avalanche

  Fasting:
    GET    /api/fasting/plans          Preset plans and activity levels
    POST   /api/fasting/window         Fasting and eating window
    POST   /api/fasting/weight-loss    BMR, TDEE and loss estimate

  Scenarios:
    GET    /api/scenarios              List presets
    POST   /api/scenarios/{id}/run     Run a preset

  Cache:
    DELETE /api/cache                  Drop every memoized result

REQUEST FLOW:
  1. Parse HTTP request
  2. Normalize defaults (start date, last meal) so the cache key is stable
  3. Serve from the ResultCache, or compute and fill it
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed JSON, invalid input (with "field")
  - 404: Unknown scenario or fasting plan
  - 429: Rate limited (see ratelimit.go)
  - 500: Internal errors

  A snowball run cut off at the horizon is NOT an error: it returns 200 with
  completed=false, payoffDate=null and a notice.

CACHING:
  Cache failures are logged and ignored. A response is always computed when
  the cache cannot answer.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Preset scenarios
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tigerkidtools/calc-engine/coastfire"
	"github.com/tigerkidtools/calc-engine/engine"
	"github.com/tigerkidtools/calc-engine/fasting"
	"github.com/tigerkidtools/calc-engine/snowball"
)

// maxBodyBytes bounds request bodies; 50 debts fit comfortably.
const maxBodyBytes = 1 << 20

// Cache lookups are tagged with X-Cache: HIT or MISS.
const cacheHeader = "X-Cache"

// errNotFound marks lookups of unknown presets.
var errNotFound = errors.New("not found")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Cache   engine.ResultCache
	Version string

	// Now is the request clock; defaults to engine.Clock.
	Now func() time.Time
}

// NewHandler creates a new handler. A nil cache disables memoization.
func NewHandler(cache engine.ResultCache) *Handler {
	if cache == nil {
		cache = engine.NopCache{}
	}
	return &Handler{
		Cache:   cache,
		Version: "dev",
		Now:     func() time.Time { return engine.Clock() },
	}
}

// =============================================================================
// META ENDPOINTS
// =============================================================================

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.Version})
}

// ListTools returns the calculator catalog.
// GET /api/tools?category=Finance
func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	calcs := engine.ListCalculators()
	if category := r.URL.Query().Get("category"); category != "" {
		calcs = engine.ListCalculatorsByCategory(engine.Category(category))
	}

	dtos := make([]CalculatorDTO, 0, len(calcs))
	for _, c := range calcs {
		dtos = append(dtos, toCalculatorDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetTool returns one catalog entry.
// GET /api/tools/{slug}
func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	calc, err := engine.LookupCalculator(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalculatorDTO(calc))
}

// PurgeCache drops every memoized result.
// DELETE /api/cache
func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if err := h.Cache.Purge(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to purge cache", err)
		return
	}
	log.Info().Msg("result cache purged")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COAST FIRE
// =============================================================================

// CoastFire computes the Coast FIRE number and time to reach it.
// POST /api/coast-fire
func (h *Handler) CoastFire(w http.ResponseWriter, r *http.Request) {
	var req CoastFireRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.serveCached(w, r, "coast-fire", req, func() (any, error) {
		return computeCoastFire(req)
	})
}

func computeCoastFire(req CoastFireRequest) (*CoastFireResponse, error) {
	in := req.toInputs()
	result, err := coastfire.Compute(in)
	if err != nil {
		return nil, err
	}
	resp := toCoastFireResponse(result)
	if req.IncludeProjection {
		resp.Projection = toProjectionDTOs(coastfire.ProjectResult(in, result))
	}
	return resp, nil
}

// =============================================================================
// DEBT SNOWBALL
// =============================================================================

// DebtSnowball simulates a payoff plan.
// POST /api/debt-snowball
func (h *Handler) DebtSnowball(w http.ResponseWriter, r *http.Request) {
	var req SnowballRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = h.normalizeSnowball(req)
	h.serveCached(w, r, "debt-snowball", req, func() (any, error) {
		return computeSnowball(req)
	})
}

// CompareStrategies runs snowball and avalanche on the same debts.
// POST /api/debt-snowball/compare
func (h *Handler) CompareStrategies(w http.ResponseWriter, r *http.Request) {
	var req SnowballRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = h.normalizeSnowball(req)
	h.serveCached(w, r, "debt-snowball-compare", req, func() (any, error) {
		return computeComparison(req)
	})
}

// normalizeSnowball pins the start date so identical requests on the same
// day share a cache entry.
func (h *Handler) normalizeSnowball(req SnowballRequest) SnowballRequest {
	if req.StartDate == "" {
		req.StartDate = h.Now().UTC().Format(dateLayout)
	}
	return req
}

// assignDebtIDs gives every debt without an id a fresh UUID. The request's
// slice is not modified.
func assignDebtIDs(debts []DebtRequest) []DebtRequest {
	out := make([]DebtRequest, len(debts))
	copy(out, debts)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func computeSnowball(req SnowballRequest) (*SnowballResponse, error) {
	req.Debts = assignDebtIDs(req.Debts)
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	result, err := snowball.Simulate(in)
	if err != nil {
		return nil, err
	}
	if notConverged := result.Err(); notConverged != nil {
		log.Warn().Err(notConverged).Int("debts", len(in.Debts)).Msg("snowball plan exceeds horizon")
	}
	return toSnowballResponse(result), nil
}

func computeComparison(req SnowballRequest) (*CompareResponse, error) {
	req.Debts = assignDebtIDs(req.Debts)
	in, err := req.toInput()
	if err != nil {
		return nil, err
	}
	cmp, err := snowball.Compare(in)
	if err != nil {
		return nil, err
	}
	return toCompareResponse(cmp), nil
}

// =============================================================================
// FASTING
// =============================================================================

// FastingPlans lists the preset plans and activity levels.
// GET /api/fasting/plans
func (h *Handler) FastingPlans(w http.ResponseWriter, r *http.Request) {
	resp := FastingPlansResponse{
		Plans:          make([]PlanDTO, len(fasting.Plans)),
		ActivityLevels: make([]ActivityDTO, len(fasting.Activities)),
	}
	for i, p := range fasting.Plans {
		resp.Plans[i] = PlanDTO{Name: p.Name, FastingHours: p.FastingHours, EatingHours: p.EatingHours}
	}
	for i, a := range fasting.Activities {
		resp.ActivityLevels[i] = ActivityDTO{
			Level:       string(a.Level),
			Name:        a.Name,
			Multiplier:  a.Multiplier,
			Description: a.Description,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// FastingWindow computes when fasting ends and eating stops.
// POST /api/fasting/window
func (h *Handler) FastingWindow(w http.ResponseWriter, r *http.Request) {
	var req FastingWindowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req, err := h.normalizeWindow(req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.serveCached(w, r, "fasting-window", req, func() (any, error) {
		return computeWindow(req)
	})
}

// normalizeWindow resolves the plan to hours and the last meal to an
// absolute timestamp.
func (h *Handler) normalizeWindow(req FastingWindowRequest) (FastingWindowRequest, error) {
	if req.Plan != "" && req.Plan != "custom" {
		plan, ok := fasting.PlanByName(req.Plan)
		if !ok {
			return req, fmt.Errorf("fasting plan %q: %w", req.Plan, errNotFound)
		}
		req.FastingHours = plan.FastingHours
	}
	req.Plan = ""

	if req.LastMeal == "" {
		if req.LastMealTime == "" {
			return req, engine.Invalid("lastMeal", "lastMeal or lastMealTime is required")
		}
		at, err := fasting.LastMealToday(req.LastMealTime, h.Now())
		if err != nil {
			return req, err
		}
		req.LastMeal = at.Format(time.RFC3339)
	}
	req.LastMealTime = ""
	return req, nil
}

func computeWindow(req FastingWindowRequest) (*FastingWindowResponse, error) {
	lastMeal, err := time.Parse(time.RFC3339, req.LastMeal)
	if err != nil {
		return nil, engine.Invalid("lastMeal", "use RFC 3339, e.g. 2025-01-15T20:00:00Z")
	}
	result, err := fasting.Window(req.FastingHours, lastMeal)
	if err != nil {
		return nil, err
	}
	return toWindowResponse(result), nil
}

// WeightLoss estimates weight lost over a number of fasting days.
// POST /api/fasting/weight-loss
func (h *Handler) WeightLoss(w http.ResponseWriter, r *http.Request) {
	var req WeightLossRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.serveCached(w, r, "fasting-weight-loss", req, func() (any, error) {
		return computeWeightLoss(req)
	})
}

func computeWeightLoss(req WeightLossRequest) (*WeightLossResponse, error) {
	in, err := req.toInputs()
	if err != nil {
		return nil, err
	}
	result, err := fasting.EstimateWeightLoss(in)
	if err != nil {
		return nil, err
	}
	return toWeightLossResponse(result), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// serveCached answers from the cache when it can, otherwise runs compute,
// stores the encoded response and writes it. req must already be
// normalized: its JSON encoding is the cache key.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, calculator string, req any, compute func() (any, error)) {
	ctx := r.Context()

	canonical, err := json.Marshal(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode request", err)
		return
	}
	key := engine.CacheKey(calculator, canonical)

	if body, ok := h.cacheGet(ctx, key); ok {
		w.Header().Set(cacheHeader, "HIT")
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	resp, err := compute()
	if err != nil {
		respondError(w, r, err)
		return
	}

	body, err := json.Marshal(resp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}
	h.cachePut(ctx, key, body)

	w.Header().Set(cacheHeader, "MISS")
	writeRawJSON(w, http.StatusOK, body)
}

func (h *Handler) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	body, ok, err := h.Cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("result cache read failed")
		return nil, false
	}
	return body, ok
}

func (h *Handler) cachePut(ctx context.Context, key string, body []byte) {
	if err := h.Cache.Put(ctx, key, body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("result cache write failed")
	}
}

// decodeJSON reads the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON", err)
		return false
	}
	return true
}

// respondError maps engine errors to HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case engine.IsClientError(err):
		resp := ErrorResponse{Error: "Invalid input", Details: err.Error()}
		var inv *engine.InvalidInputError
		if errors.As(err, &inv) {
			resp.Details = inv.Reason
			resp.Field = inv.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
	case engine.IsNotFound(err), errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, "Not found", err)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
