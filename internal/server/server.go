package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/geometry"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/importer"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/matcher"
	"github.com/Jatin1628/Osdag-bridge-module/internal/calc/report"
	"github.com/Jatin1628/Osdag-bridge-module/internal/catalog"
	"github.com/Jatin1628/Osdag-bridge-module/internal/config"
	"github.com/Jatin1628/Osdag-bridge-module/internal/httpjson"
	"github.com/Jatin1628/Osdag-bridge-module/internal/metrics"
	"github.com/Jatin1628/Osdag-bridge-module/internal/middleware"
)

// Server bundles the router and its dependencies.
type Server struct {
	cfg     config.ServerConfig
	router  *mux.Router
	handler http.Handler
}

func New(cfg *config.Config, cat catalog.Provider) *Server {
	router := mux.NewRouter()
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	HandleList(router, cat, limiter)

	return &Server{
		cfg:     cfg.Server,
		router:  router,
		handler: middleware.WithRequestID(middleware.AccessLog(middleware.CORS(router))),
	}
}

// HandleList registers every route on router.
func HandleList(router *mux.Router, cat catalog.Provider, limiter *middleware.IPRateLimiter) {
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	geometryH := &geometry.Handler{}
	matcherH := &matcher.Handler{Catalog: cat}
	reportH := &report.Handler{Catalog: cat}
	importerH := &importer.Handler{Catalog: cat}

	api.HandleFunc("/tools/geometry/init", geometryH.Init).Methods("POST")
	api.HandleFunc("/tools/geometry/edit", geometryH.Edit).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/locations/closest", matcherH.Closest).Methods("POST")
	api.HandleFunc("/locations/closest/batch", matcherH.ClosestBatch).Methods("POST")
	api.HandleFunc("/locations/closest/import", importerH.Locations).Methods("POST")
}

// Handler exposes the wrapped router (for tests).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains connections within the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.cfg.TLSCert != "" {
			err = srv.ListenAndServeTLS(s.cfg.TLSCert, s.cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	zap.L().Info("server: listening", zap.String("addr", s.cfg.Addr), zap.Bool("tls", s.cfg.TLSCert != ""))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		zap.L().Info("server: shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		zap.L().Info("server: stopped")
		return nil
	}
}
