// Package server provides the HTTP REST API for the volunteer matcher.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/impactlab/volunteer-matcher/internal/config"
	"github.com/impactlab/volunteer-matcher/internal/matching"
	"github.com/impactlab/volunteer-matcher/internal/server/middleware"
	"github.com/impactlab/volunteer-matcher/internal/server/ratelimit"
	"github.com/impactlab/volunteer-matcher/internal/store"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      store.Store

	// engine is replaced, never mutated, when feedback reinforces the
	// weight vector. Reads go through currentEngine.
	engineMu sync.RWMutex
	engine   *matching.Engine

	minScore    float64
	limit       int
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	started     time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	DatabaseURL    string
	AllowedOrigins []string
	MinScore       float64
	Limit          int
	Weights        map[string]float64
	SeedCount      int
	SeedValue      uint64
}

// New creates a new server instance. An empty DatabaseURL runs against an
// in-memory store seeded with demo listings.
func New(cfg Config) (*Server, error) {
	backing, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(cfg.Weights)
	if err != nil {
		return nil, err
	}

	minScore := cfg.MinScore
	if minScore == 0 {
		minScore = matching.DefaultMinScore
	}
	limit := cfg.Limit
	if limit == 0 {
		limit = matching.DefaultLimit
	}

	s := &Server{
		store:    backing,
		engine:   engine,
		minScore: minScore,
		limit:    limit,
		started:  time.Now(),
	}

	// Initialize rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(backing, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	mux := s.routes()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(corsMiddleware.Handler(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication endpoints
	mux.HandleFunc("POST /v1/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", s.authHandler.Login)

	// Matching endpoints
	mux.Handle("GET /v1/matching/recommendations", s.authed(s.handleRecommendations))
	mux.Handle("GET /v1/matching/compatibility/{id}", s.authed(s.handleCompatibility))
	mux.Handle("GET /v1/matching/diversity", s.authed(s.handleDiversity))
	mux.Handle("POST /v1/matching/feedback", s.authed(s.handleFeedback))
	mux.Handle("GET /v1/matching/stats", s.authed(s.handleStats))

	// Opportunity endpoints
	mux.HandleFunc("GET /v1/opportunities", s.handleListOpportunities)
	mux.HandleFunc("GET /v1/opportunities/{id}", s.handleGetOpportunity)
	mux.Handle("POST /v1/opportunities", s.authed(s.handleCreateOpportunity))
	mux.Handle("PUT /v1/opportunities/{id}", s.authed(s.handleUpdateOpportunity))
	mux.Handle("DELETE /v1/opportunities/{id}", s.authed(s.handleDeleteOpportunity))

	// Profile endpoints
	mux.Handle("GET /v1/profiles/me", s.authed(s.handleGetProfile))
	mux.Handle("PUT /v1/profiles/me", s.authed(s.handlePutProfile))

	return mux
}

// authed wraps a handler with JWT authentication.
func (s *Server) authed(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// openStore connects to Postgres when a URL is configured, otherwise seeds
// an in-memory store with demo listings.
func openStore(cfg Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		return store.Connect(context.Background(), cfg.DatabaseURL)
	}

	mem := store.NewMemoryStore()
	if cfg.SeedCount > 0 {
		if err := mem.SeedDemo(context.Background(), cfg.SeedCount, cfg.SeedValue); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	return mem, nil
}

// currentEngine returns the engine serving requests right now.
func (s *Server) currentEngine() *matching.Engine {
	s.engineMu.RLock()
	defer s.engineMu.RUnlock()
	return s.engine
}

// reinforceEngine nudges the weight vector toward the factors that drove an
// accepted match and swaps in an engine built from the result.
func (s *Server) reinforceEngine(sub types.SubScores) {
	s.engineMu.Lock()
	defer s.engineMu.Unlock()

	next := s.engine.Weights().Reinforce(sub)
	if next == s.engine.Weights() {
		return
	}
	engine, err := matching.NewEngine(next)
	if err != nil {
		log.Printf("Dropping reinforced weights: %v", err)
		return
	}
	s.engine = engine
}

// buildEngine applies weight overrides on top of the defaults.
func buildEngine(overrides map[string]float64) (*matching.Engine, error) {
	if len(overrides) == 0 {
		return matching.NewDefaultEngine(), nil
	}

	weights, err := matching.WeightsWithOverrides(overrides)
	if err != nil {
		return nil, err
	}

	engine, err := matching.NewEngine(weights)
	if err != nil {
		return nil, fmt.Errorf("invalid weight overrides: %w", err)
	}
	return engine, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For would only be
// trusted behind a known proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
