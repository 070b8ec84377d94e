// File: internal/infra/web/server.go
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"resume-checkout/internal/domain/ports/adapter"
	"resume-checkout/internal/infra/logging"
	"resume-checkout/internal/usecase"
)

// Server wires the checkout HTTP surface: public pricing and payment routes
// plus the JWT-guarded admin API.
type Server struct {
	pricingUC  usecase.PricingUseCase
	checkoutUC usecase.CheckoutUseCase
	redeemUC   usecase.RedeemUseCase
	statsUC    usecase.StatsUseCase
	analyzer   adapter.Analyzer
	auth       *AuthManager
	adminKey   string
	log        *zerolog.Logger
}

func NewServer(
	pricingUC usecase.PricingUseCase,
	checkoutUC usecase.CheckoutUseCase,
	redeemUC usecase.RedeemUseCase,
	statsUC usecase.StatsUseCase,
	analyzer adapter.Analyzer,
	auth *AuthManager,
	adminKey string,
	logger *zerolog.Logger,
) *Server {
	srvLog := logger.With().Str("component", "WebServer").Logger()
	return &Server{
		pricingUC:  pricingUC,
		checkoutUC: checkoutUC,
		redeemUC:   redeemUC,
		statsUC:    statsUC,
		analyzer:   analyzer,
		auth:       auth,
		adminKey:   adminKey,
		log:        &srvLog,
	}
}

// Router builds the chi mux with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/pricing/{region}", s.handlePricing)
	r.Post("/payment/session", s.handleCreateSession)
	r.Get("/payment/return", s.handleReturn)

	r.Post("/admin/login", s.handleAdminLogin)
	r.Group(func(g chi.Router) {
		g.Use(s.authMiddleware)
		g.Get("/admin/stats", s.handleAdminStats)
	})

	return r
}

// requestID tags every request with a trace id, honoring an inbound
// X-Request-ID when the caller supplies one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logging.WithTraceID(r.Context(), id)))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.With(r.Context(), s.log).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// authMiddleware guards the admin API with the JWT minted by /admin/login.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.auth == nil {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
