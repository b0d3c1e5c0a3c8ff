// Package server exposes a loaded table over an HTTP JSON API for the
// browser grid and chart page.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

//go:embed templates/index.html
var templatesFS embed.FS

const indexTemplate = "index.html"

// Server serves one immutable table. Handlers share it without locking.
type Server struct {
	cfg     Config
	table   *models.Table
	logger  *slog.Logger
	index   *template.Template
	handler http.Handler
}

// New builds a server for table. A nil logger uses slog.Default.
func New(table *models.Table, cfg Config, logger *slog.Logger) (*Server, error) {
	if table == nil {
		return nil, errors.New("server: nil table")
	}
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}

	index, err := loadIndex(cfg.TemplatesDir)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		table:  table,
		logger: logger,
		index:  index,
	}
	s.handler = withRequestLog(logger, s.routes())
	return s, nil
}

func loadIndex(dir string) (*template.Template, error) {
	if dir != "" {
		t, err := template.ParseFiles(filepath.Join(dir, indexTemplate))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template: %w", err)
		}
		return t, nil
	}
	return template.ParseFS(templatesFS, "templates/"+indexTemplate)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/{$}", allowMethod(http.MethodGet, s.handleIndex))
	mux.Handle("/get_data", allowMethod(http.MethodPost, s.handleGetData))
	mux.Handle("/get_filtered_data", allowMethod(http.MethodPost, s.handleFilteredData))
	mux.Handle("/get_chart_data", allowMethod(http.MethodPost, s.handleChartData))
	mux.Handle("/get_unique_values", allowMethod(http.MethodPost, s.handleUniqueValues))
	mux.Handle("/get_date_columns", allowMethod(http.MethodGet, s.handleDateColumns))
	mux.Handle("/health", allowMethod(http.MethodGet, s.handleHealth))
	if s.cfg.StaticDir != "" {
		static := http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir)))
		mux.Handle("/static/", allowMethod(http.MethodGet, static.ServeHTTP))
	}
	return mux
}

// Handler returns the server's routes wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within Config.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			"addr", ln.Addr().String(),
			"source", s.table.Source(),
			"rows", s.table.RowCount(),
			"columns", s.table.ColumnCount(),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
