package api

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"postscout/session"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server represents the web UI server
type Server struct {
	svc      *session.Service
	sessions *SessionStore
	page     *template.Template
	logger   *zap.Logger
	port     int
}

// NewServer creates a new web UI server
func NewServer(svc *session.Service, port int, sessionTTL time.Duration, logger *zap.Logger) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, err
	}

	return &Server{
		svc:      svc,
		sessions: NewSessionStore(sessionTTL, svc.NewState),
		page:     page,
		logger:   logger,
		port:     port,
	}, nil
}

// Handler returns the routed handler of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.IndexHandler)
	mux.HandleFunc("/search", s.SearchHandler)
	mux.HandleFunc("/select", s.SelectHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(s.port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Starting web server", zap.Int("port", s.port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
