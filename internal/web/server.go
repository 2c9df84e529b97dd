// Package web serves the read-only review API over the loaded place
// directory: resolved places, the unresolved backlog, and run stats.
package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/db"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
)

// Server represents the web server.
type Server struct {
	conn       *db.Connection
	logger     *zap.Logger
	httpServer *http.Server
	router     *mux.Router
}

// NewServer wires routes and timeouts around an open connection.
func NewServer(conn *db.Connection, addr string, logger *zap.Logger) *Server {
	s := &Server{conn: conn, logger: logging.NopIfNil(logger)}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/places", s.listPlaces).Methods("GET")
	api.HandleFunc("/places/{city}", s.getPlace).Methods("GET")
	api.HandleFunc("/unresolved", s.listUnresolved).Methods("GET")
	api.HandleFunc("/stats", s.getStats).Methods("GET")

	s.router.HandleFunc("/healthz", s.health).Methods("GET")

	s.router.Use(s.requestLogging)
}

// requestLogging logs method, path, status and duration per request.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
