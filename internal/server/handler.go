package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/felixgeelhaar/uiforge/internal/errors"
	"github.com/felixgeelhaar/uiforge/internal/health"
	"github.com/felixgeelhaar/uiforge/internal/log"
	"github.com/felixgeelhaar/uiforge/internal/metrics"
	"github.com/felixgeelhaar/uiforge/internal/synth"
	"github.com/felixgeelhaar/uiforge/internal/uiplan"
)

// maxBodyBytes bounds an agent request. A current plan plus a 4000 rune
// instruction fits comfortably.
const maxBodyBytes = 1 << 20

// Runner executes one generation step. *synth.Agent satisfies it.
type Runner interface {
	Run(ctx context.Context, req synth.Request) (*synth.Result, error)
}

// Options carries the optional collaborators of the router.
type Options struct {
	Logger   *log.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Probes   *health.ProbeManager
}

// AgentRequest is the body of POST /api/agent. CurrentPlan is untrusted and
// validated before use.
type AgentRequest struct {
	Mode        string `json:"mode"`
	Message     string `json:"message"`
	CurrentPlan any    `json:"currentPlan,omitempty"`
}

type handler struct {
	runner  Runner
	logger  *log.Logger
	metrics *metrics.Metrics
	probes  *health.ProbeManager
	openapi []byte
}

// NewRouter builds the HTTP API around runner.
func NewRouter(runner Runner, opts Options) (chi.Router, error) {
	doc, err := Document()
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}

	h := &handler{
		runner:  runner,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		probes:  opts.Probes,
		openapi: docJSON,
	}
	if h.logger == nil {
		h.logger = log.Discard()
	}
	if h.probes == nil {
		h.probes = health.NewProbeManager("")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Post("/api/agent", h.handleAgent)
	r.Get("/openapi.json", h.handleOpenAPI)
	r.Get("/healthz", h.handleReadiness)
	r.Get("/health/ready", h.handleReadiness)
	r.Get("/health/live", h.handleLiveness)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.HandlerFor(opts.Gatherer))
	}

	return r, nil
}

// instrument logs each request and records it under its route pattern.
func (h *handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.RecordHTTP(route, status, time.Since(start))
		h.logger.DebugContext(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *handler) handleAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decodeAgentRequest(w, r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, errors.ErrCodeRequestInvalid, err.Error())
		return
	}

	if req.Mode == "" || strings.TrimSpace(req.Message) == "" {
		writeError(w, h.logger, http.StatusBadRequest, errors.ErrCodeRequestInvalid, "Missing mode or message")
		return
	}

	mode, err := synth.ParseMode(req.Mode)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, errors.ErrCodeRequestMode, err.Error())
		return
	}

	var current *uiplan.Plan
	if req.CurrentPlan != nil {
		plan, err := uiplan.Validate(req.CurrentPlan)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, errors.ErrCodePlanInvalid, err.Error())
			return
		}
		current = &plan
	}

	result, err := h.runner.Run(ctx, synth.Request{Mode: mode, Message: req.Message, CurrentPlan: current})
	if err != nil {
		h.metrics.RecordError(err, "server")
		h.logger.LogErrorContext(ctx, err)
		writeError(w, h.logger, statusFor(err), errors.CodeOf(err), messageFor(err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

// decodeAgentRequest keeps numbers as json.Number so prop values survive
// validation and code generation unchanged.
func decodeAgentRequest(w http.ResponseWriter, r *http.Request) (AgentRequest, error) {
	var req AgentRequest

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()
	err := dec.Decode(&req)
	return req, err
}

func (h *handler) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.openapi)
}

func (h *handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	result := h.probes.CheckReadiness(r.Context())
	status := http.StatusOK
	if result.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, status, result)
}

func (h *handler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.probes.CheckLiveness(r.Context()))
}
