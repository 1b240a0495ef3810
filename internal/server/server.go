package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/BrandishCasino_Go/internal/casino"
	"github.com/osse101/BrandishCasino_Go/internal/handler"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
	"github.com/osse101/BrandishCasino_Go/internal/settings"
	"github.com/osse101/BrandishCasino_Go/internal/sse"
	"github.com/osse101/BrandishCasino_Go/internal/user"
	"github.com/osse101/BrandishCasino_Go/internal/wallet"
)

// Config holds listener and auth settings
type Config struct {
	Port           int
	APIKey         string
	AdminAPIKey    string
	TrustedProxies []string
	RateLimit      int
}

// Services are the application services the routes call into
type Services struct {
	Store    handler.Pinger
	Casino   casino.Service
	Users    user.Service
	Wallet   wallet.Service
	Settings settings.Service
	Hub      *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and HTTP server
func NewServer(cfg Config, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires every route. Chi middleware runs outermost first.
func NewRouter(cfg Config, svc Services) http.Handler {
	r := chi.NewRouter()

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = RateLimitPerWindow
	}
	detector := NewSuspiciousActivityDetector(limit)
	admin := AdminMiddleware(cfg.AdminAPIKey, cfg.TrustedProxies, detector)

	r.Use(chimw.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.With(FirehoseGuard(admin)).Get(EventsPath, sse.Handler(svc.Hub))

	games := handler.NewGameHandler(svc.Casino)
	adminHandler := handler.NewAdminHandler(svc.Settings, svc.Wallet)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svc.Users))
			r.Get("/{userID}", handler.HandleGetUser(svc.Users))
			r.Get("/{userID}/bets", handler.HandleGetUserBets(svc.Users))
		})
		r.Get("/leaderboard", handler.HandleGetLeaderboard(svc.Users))

		r.Route("/games", func(r chi.Router) {
			r.Get("/catalog", games.HandleCatalog)
			r.Post("/slots/spin", games.HandleSlotsSpin)
			r.Post("/roulette/spin", games.HandleRouletteSpin)
			r.Post("/plinko/drop", games.HandlePlinkoDrop)

			r.Post("/blackjack/start", games.HandleBlackjackStart)
			r.Post("/blackjack/{roundID}/{action}", games.HandleBlackjackAction)

			r.Post("/mines/start", games.HandleMinesStart)
			r.Post("/mines/{roundID}/reveal", games.HandleMinesReveal)
			r.Post("/mines/{roundID}/cashout", games.HandleMinesCashOut)
		})
		r.Get("/rounds/{roundID}", games.HandleGetRound)

		r.Route("/wallet", func(r chi.Router) {
			r.Post("/deposit", handler.HandleDeposit(svc.Wallet))
			r.Post("/withdraw", handler.HandleWithdraw(svc.Wallet))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(admin)

			r.Get("/rates", adminHandler.HandleListWinRates)
			r.Put("/rates", adminHandler.HandleSetWinRate)
			r.Delete("/rates", adminHandler.HandleClearWinRate)

			r.Get("/forced", adminHandler.HandleListForcedOutcomes)
			r.Put("/forced", adminHandler.HandleSetForcedOutcome)
			r.Delete("/forced", adminHandler.HandleClearForcedOutcome)

			r.Get("/transactions", adminHandler.HandleListTransactions)
			r.Post("/transactions/{id}/approve", adminHandler.HandleApproveTransaction)
			r.Post("/transactions/{id}/reject", adminHandler.HandleRejectTransaction)

			r.Post("/sse/broadcast", handler.HandleSSEBroadcast(svc.Hub))
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
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

// Flush keeps the SSE stream working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func isQuietPath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAdminKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start listens until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
