package httptransport

import (
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"
)

// ServerConfig contains tunables for the HTTP server.
type ServerConfig struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

// NewServer creates *http.Server with the handler wrapped in request logging and CORS.
func NewServer(cfg ServerConfig, handler http.Handler, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      Wrap(handler, cfg.AllowedOrigins, logger),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Wrap applies CORS and request logging to handler.
func Wrap(handler http.Handler, allowedOrigins []string, logger *log.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(logRequests(handler, logger))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, logger *log.Logger) http.Handler {
	if logger == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Printf("%d %s %s %v", rec.status, r.Method, r.URL.Path, time.Since(start))
	})
}
