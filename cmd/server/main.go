package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/waterverse/fairness/datamodel"
	"github.com/waterverse/fairness/fair"
	"github.com/waterverse/fairness/geo"
	"github.com/waterverse/fairness/internal/logger"
	"github.com/waterverse/fairness/internal/metric"
)

// maxBodyBytes caps evaluation payloads at 10 MiB.
const maxBodyBytes = 10 << 20

type Server struct {
	cfg      fair.Config
	engine   *fair.Engine
	metrics  *metric.Metrics
	registry *prometheus.Registry
	router   *chi.Mux
}

func NewServer() (*Server, error) {
	cfg := fair.DefaultConfig()

	engine, err := fair.NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		metrics:  metric.New(registry),
		registry: registry,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	// Evaluation
	r.Post("/api/v1/evaluate", s.handleEvaluate)
	r.Post("/api/v1/evaluate/file", s.handleEvaluateFile)

	// Observability and API docs
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/swagger.json", handleSwaggerJSON)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger.json")))

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		SchemeVersion: fair.SchemeVersion,
	})
}

// Evaluation handler: the request body is the NGSI-LD Data Model
// document itself.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, datamodel.CodeParseError, "unable to read request body")
		return
	}

	s.evaluate(w, body)
}

// File-upload variant: the document arrives as a multipart form file
// under the "file" field.
func (s *Server) handleEvaluateFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		respondError(w, http.StatusBadRequest, datamodel.CodeParseError, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, datamodel.CodeParseError, "no file provided")
		return
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, datamodel.CodeParseError, "unable to read uploaded file")
		return
	}

	s.evaluate(w, body)
}

// evaluate runs the full pipeline: parse, structure check, geolocation
// check, rule evaluation, aggregation. Parse failures short-circuit
// before any later stage runs.
func (s *Server) evaluate(w http.ResponseWriter, body []byte) {
	start := time.Now()

	doc, err := datamodel.Parse(body)
	if err != nil {
		s.respondParseFailure(w, err)
		return
	}

	structure := datamodel.CheckStructure(doc, body)
	geoFindings := geo.Validate(doc)
	verdicts := s.engine.Evaluate(fair.Inputs{
		Doc:       doc,
		Structure: structure,
		Geo:       geoFindings,
	})
	report := fair.Aggregate(s.cfg, verdicts)

	s.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	s.metrics.EvaluationsTotal.WithLabelValues(string(report.Level)).Inc()
	for _, v := range verdicts {
		s.metrics.RuleVerdictsTotal.WithLabelValues(v.RuleID, string(v.Status)).Inc()
	}

	respondJSON(w, http.StatusOK, EvaluateResponse{
		RequestID:         uuid.NewString(),
		EvaluationTime:    time.Since(start).String(),
		Report:            report,
		StructureFindings: structure,
		GeoFindings:       geoFindings,
	})
}

func (s *Server) respondParseFailure(w http.ResponseWriter, err error) {
	var parseErr *datamodel.ParseError
	if errors.As(err, &parseErr) {
		s.metrics.EvaluationsTotal.WithLabelValues("parse_error").Inc()
		respondError(w, http.StatusBadRequest, datamodel.CodeParseError, parseErr.Error())
		return
	}

	var schemaErr *datamodel.SchemaMismatchError
	if errors.As(err, &schemaErr) {
		s.metrics.EvaluationsTotal.WithLabelValues("schema_mismatch").Inc()
		respondError(w, http.StatusBadRequest, datamodel.CodeSchemaMismatch, schemaErr.Error())
		return
	}

	s.metrics.EvaluationsTotal.WithLabelValues("internal").Inc()
	logger.Error("unexpected parse failure", "error", err)
	respondError(w, http.StatusInternalServerError, "INTERNAL", "internal evaluation failure")
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message},
	})
}

func main() {
	server, err := NewServer()
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("logger shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
