package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquawatch/bloom-risk-engine/internal/domain"
	"github.com/aquawatch/bloom-risk-engine/internal/sites"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and assessment read routes.
type Server struct {
	httpServer *http.Server
	cache      *BundleCache
	modelCfg   domain.ModelConfig
	logger     *slog.Logger
}

// NewServer creates the HTTP server. The cache may be nil; catalog sites
// without a cached bundle are scored ad hoc from their demo envelope.
func NewServer(addr string, ready ReadinessChecker, cache *BundleCache, modelCfg domain.ModelConfig, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		cache:    cache,
		modelCfg: modelCfg,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /sites", s.handleSites)
	mux.HandleFunc("GET /assess/{site}", s.handleAssess)
	mux.HandleFunc("GET /assess/{site}/grid", s.handleGrid)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// siteInfo is the /sites listing entry.
type siteInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	catalog := sites.Catalog()
	out := make([]siteInfo, len(catalog))
	for i, site := range catalog {
		out[i] = siteInfo{
			ID:          site.ID,
			Name:        site.Name,
			Latitude:    site.Latitude,
			Longitude:   site.Longitude,
			Description: site.Description,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	siteID := r.PathValue("site")

	if s.cache != nil {
		if bundle, ok := s.cache.Get(siteID); ok {
			writeJSON(w, http.StatusOK, bundle)
			return
		}
	}

	// No published bundle yet: catalog sites fall back to an ad-hoc score
	// of their demo envelope so the endpoint works before the first batch.
	if site, known := sites.Lookup(siteID); known {
		env := sites.DemoEnvelope(site, time.Now().UTC().Truncate(24*time.Hour))
		s.logger.Debug("serving ad-hoc demo assessment", "site_id", siteID)
		writeJSON(w, http.StatusOK, domain.BuildBundle(env, s.modelCfg))
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "unknown site " + siteID,
	})
}

// gridResponse carries the interpolated spatial risk surface for a site.
type gridResponse struct {
	SiteID    string             `json:"site_id"`
	SiteScore int                `json:"site_score"`
	GridSize  int                `json:"grid_size"`
	Grid      domain.SpatialGrid `json:"grid"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	siteID := r.PathValue("site")
	site, known := sites.Lookup(siteID)
	if !known {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "unknown site " + siteID,
		})
		return
	}

	obs := sites.DemoObservation(site, time.Now().UTC().Truncate(24*time.Hour))
	score := 0
	if s.cache != nil {
		if bundle, ok := s.cache.Get(siteID); ok {
			score = bundle.Assessment.Score
		}
	}
	if score == 0 {
		score = domain.Assess(obs, s.modelCfg).Score
	}

	grid := domain.InterpolateRisk(obs, float64(score), s.modelCfg.Spatial)
	writeJSON(w, http.StatusOK, gridResponse{
		SiteID:    siteID,
		SiteScore: score,
		GridSize:  s.modelCfg.Spatial.GridSize,
		Grid:      grid,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
