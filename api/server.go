// Package api provides the HTTP REST API server for valuekit.
//
// Every calculator is exposed as POST /api/v1/<name> with a JSON body;
// Monte Carlo models are under /api/v1/simulate/<model> and stream over
// the WebSocket at /api/v1/ws/simulate.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/valuekit/internal/calc"
	"github.com/seenimoa/valuekit/internal/config"
	"github.com/seenimoa/valuekit/internal/infra"
	"github.com/seenimoa/valuekit/internal/simulation"
	"github.com/seenimoa/valuekit/pkg/models"
)

const (
	maxBodyBytes   = 1 << 20
	requestTimeout = 120 * time.Second
	cleanupEvery   = time.Minute
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	defaults calc.Defaults
	sim      *simulation.Simulator
	cache    *infra.Cache
	limiter  *infra.RateLimiter
	version  string
	started  time.Time
	debug    bool
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) *Server {
	srv := &Server{
		cfg:      cfg,
		defaults: calc.DefaultsFrom(cfg),
		sim:      simulation.New(cfg.Simulation.Workers, cfg.Simulation.MaxPaths, cfg.Simulation.MaxSteps),
		cache:    infra.NewCache(time.Duration(cfg.Cache.TTL) * time.Second),
		limiter:  infra.PerSecond(cfg.Simulation.RateLimitPerSec),
		version:  "dev",
		started:  time.Now(),
		debug:    cfg.Logging.Level == "debug",
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetVersion sets the version reported by /health.
func (s *Server) SetVersion(v string) {
	s.version = v
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: requestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.cache.Run(ctx, cleanupEvery)

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	log.Printf("valuekit API listening on %s", addr)
	select {
	case err := <-errc:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-done:
	}
	log.Println("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// The stream outlives a single request timeout.
		r.Get("/ws/simulate", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			r.Get("/calculators", s.handleCalculators)
			r.Get("/config", s.handleGetConfig)
			r.Delete("/cache", s.handleFlushCache)

			for _, c := range calc.All() {
				r.Post("/"+c.Name, s.handleCalc(c))
			}
			for _, sm := range calc.Simulations() {
				r.Post("/simulate/"+sm.Name, s.handleSimulate(sm))
			}
		})
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"` // error kind, e.g. "invalid_input"
}

// CalculatorInfo describes one endpoint for GET /api/v1/calculators.
type CalculatorInfo struct {
	Name    string `json:"name"`
	Route   string `json:"route"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

// HealthStatus is the payload of /health.
type HealthStatus struct {
	Status  string           `json:"status"`
	Version string           `json:"version"`
	Uptime  string           `json:"uptime"`
	Cache   infra.CacheStats `json:"cache"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: HealthStatus{
			Status:  "ok",
			Version: s.version,
			Uptime:  time.Since(s.started).Round(time.Second).String(),
			Cache:   s.cache.Stats(),
		},
	})
}

func (s *Server) handleCalculators(w http.ResponseWriter, r *http.Request) {
	var out []CalculatorInfo
	for _, c := range calc.All() {
		out = append(out, CalculatorInfo{Name: c.Name, Route: "/api/v1/" + c.Name, Summary: c.Summary, Cached: true})
	}
	for _, sm := range calc.Simulations() {
		out = append(out, CalculatorInfo{Name: sm.Name, Route: "/api/v1/simulate/" + sm.Name, Summary: sm.Summary})
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) handleFlushCache(w http.ResponseWriter, r *http.Request) {
	s.cache.Flush()
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: s.cache.Stats()})
}

// handleCalc runs a deterministic calculator, memoizing the result by
// route and raw body. A run that fails with a partial result sends it as
// data inside the error envelope.
func (s *Server) handleCalc(c calc.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body: "+err.Error())
			return
		}

		v, err := s.cache.GetOrCompute(infra.Key(c.Name, body), func() (any, error) {
			return c.Run(s.defaults, jsonDecoder(body))
		})
		if calc.Partial(v, err) {
			writeJSON(w, statusFor(err), APIResponse{
				Data:  v,
				Error: err.Error(),
				Kind:  models.KindName(err),
			})
			return
		}
		if err != nil {
			writeCalcError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: v})
	}
}

// handleSimulate runs a Monte Carlo model behind the rate limiter.
func (s *Server) handleSimulate(sm calc.Simulation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited", "simulation rate limit exceeded")
			return
		}
		body, err := readBody(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_input", "invalid request body: "+err.Error())
			return
		}

		res, err := sm.Run(r.Context(), s.sim, s.defaults, jsonDecoder(body), nil)
		if err != nil {
			writeCalcError(w, err)
			return
		}
		if s.debug {
			log.Printf("simulation %s run=%s paths=%d seed=%d", res.Model, res.RunID, len(res.Paths), res.Seed)
		}
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
	}
}

// ============================================================
// Helpers
// ============================================================

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// jsonDecoder decodes body strictly: unknown fields are rejected so typos
// in assumption names do not silently fall back to zero.
func jsonDecoder(body []byte) calc.DecodeFunc {
	return func(target any) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		return dec.Decode(target)
	}
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case models.KindName(err) == "internal":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func writeCalcError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), models.KindName(err), err.Error())
}

// writeJSON encodes v before committing the status, so a payload that
// cannot be encoded becomes a 500 envelope instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	buf, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to encode JSON response: %v", err)
		status = http.StatusInternalServerError
		buf, _ = json.Marshal(APIResponse{Error: "failed to encode response", Kind: "internal"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(buf, '\n')); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
		Kind:    kind,
	})
}
