package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lootvault/lootvault/internal/database"
	"github.com/lootvault/lootvault/internal/economy"
	"github.com/lootvault/lootvault/internal/handler"
	"github.com/lootvault/lootvault/internal/inventory"
	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/metrics"
	"github.com/lootvault/lootvault/internal/mission"
	"github.com/lootvault/lootvault/internal/repository"
	"github.com/lootvault/lootvault/internal/sse"
	"github.com/lootvault/lootvault/internal/trade"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	inventoryService inventory.Service
	tradeService     trade.Service
	missionService   mission.Service
	economyService   economy.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, inventoryService inventory.Service, tradeService trade.Service, missionService mission.Service, economyService economy.Service, itemRepo repository.Item, userRepo repository.User, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// User routes
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(userRepo))
			r.Get("/{userID}", handler.HandleGetUser(userRepo))
		})

		// Inventory routes
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(inventoryService))
			r.Post("/draw", handler.HandleDraw(inventoryService, economyService, itemRepo))
			r.Post("/showcase", handler.HandleSetShowcase(inventoryService))

			r.Route("/entries/{entryID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetEntry(inventoryService))
				r.Get("/appraise", handler.HandleAppraiseEntry(inventoryService))
			})
		})

		// Trade routes
		r.Route("/trades", func(r chi.Router) {
			r.Get("/", handler.HandleListTrades(tradeService))
			r.Post("/", handler.HandleProposeTrade(tradeService))

			r.Route("/{tradeID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetTrade(tradeService))
				r.Post("/accept", handler.HandleAcceptTrade(tradeService))
				r.Post("/reject", handler.HandleRejectTrade(tradeService))
				r.Post("/cancel", handler.HandleCancelTrade(tradeService))
			})
		})

		// Mission routes
		r.Route("/missions", func(r chi.Router) {
			r.Get("/", handler.HandleListMissions(missionService))
			r.Get("/progress", handler.HandleListMissionProgress(missionService))
			r.Post("/progress", handler.HandleEnsureMissionProgress(missionService))
			r.Post("/progress/record", handler.HandleRecordMissionProgress(missionService))
			r.Post("/claim-day", handler.HandleClaimMissionDay(missionService))
			r.Post("/claim", handler.HandleClaimMissionReward(missionService))
		})

		// Economy routes
		r.Route("/economy", func(r chi.Router) {
			r.Get("/balance", handler.HandleGetBalance(economyService))
			r.Post("/grant", handler.HandleGrantTickets(economyService))
			r.Post("/debit", handler.HandleDebitTickets(economyService))
		})

		// Live event stream
		r.Get("/events", sse.Handler(sseHub))

		// Catalog routes
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handler.HandleGetCatalog(itemRepo))
			r.Get("/boxes/{boxID}", handler.HandleGetBox(itemRepo))
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Post("/", handler.HandleAdminCreateItem(itemRepo, inventoryService))
				r.Put("/{itemID}", handler.HandleAdminUpdateItem(itemRepo, inventoryService))
				r.Delete("/{itemID}", handler.HandleAdminDeleteItem(itemRepo, inventoryService))
			})

			r.Post("/trades/expire", handler.HandleAdminExpireTrades(tradeService))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		inventoryService: inventoryService,
		tradeService:     tradeService,
		missionService:   missionService,
		economyService:   economyService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
