// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/activity"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/handler"
)

// Config holds server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
	Forms       *forms.Service
	// Activity backs the audit-trail endpoint; nil disables it.
	Activity activity.Store
	// Live serves the websocket session endpoint; nil disables it.
	Live http.Handler
}

// Router builds the full route table. Exposed separately from Run so tests
// can exercise the assembled server without binding a port.
func Router(cfg Config) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(MetricsMiddleware)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Session-Token", "X-Locale"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	fh := handler.NewFormHandler(cfg.Forms)
	sh := handler.NewSearchHandler(cfg.Forms)

	r.Route("/v1/forms", func(r chi.Router) {
		r.Get("/", fh.ListDesigns)
		r.Route("/{formID}", func(r chi.Router) {
			r.Get("/", fh.GetDesign)
			r.Put("/", fh.SaveDesign)
			r.Delete("/", fh.DeleteDesign)
			r.Get("/render", fh.RenderPage)
			r.Post("/render", fh.RenderPage)
			r.Post("/search", sh.Execute)
			r.Post("/search/clear", sh.Clear)
			r.Get("/search/state", sh.State)
		})
	})

	if cfg.Activity != nil {
		ah := handler.NewActivityHandler(cfg.Activity)
		r.Get("/v1/activity", ah.Query)
	}

	if cfg.Live != nil {
		r.Handle("/v1/forms/live", cfg.Live)
	}
	return r
}

// Run starts the HTTP server with all routes registered and shuts it down
// when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	logrus.WithField("addr", addr).Info("starting server")

	server := &http.Server{
		Addr:              addr,
		Handler:           Router(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// requestLogger logs one line per request with method, path and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Info("http request")
	})
}
