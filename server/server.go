package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/blogdb/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/registrar.go -pkg mocks -skip-ensure -fmt goimports . FeedRegistrar
//go:generate moq -out mocks/sweeper.go -pkg mocks -skip-ensure -fmt goimports . Sweeper

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	registrar FeedRegistrar
	sweeper   Sweeper
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for read operations of the server
type Database interface {
	ListArticles(ctx context.Context, limit, offset int) ([]domain.Article, error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	CountArticles(ctx context.Context) (int, error)
	GetFeeds(ctx context.Context) ([]domain.Feed, error)
}

// FeedRegistrar registers new feeds
type FeedRegistrar interface {
	Register(ctx context.Context, url string) (*domain.Feed, bool, error)
}

// Sweeper starts on-demand sweeps
type Sweeper interface {
	TriggerSweep() bool
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetAPIKeys() []string
	GetBaseURL() string
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, registrar FeedRegistrar, sweeper Sweeper, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		registrar: registrar,
		sweeper:   sweeper,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("blogdb", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)
		r.HandleFunc("GET /feeds", s.listFeedsHandler)
		r.HandleFunc("GET /feeds/opml", s.opmlHandler)

		// write endpoints
		r.Handle("POST /feeds", s.requireAPIKey(http.HandlerFunc(s.createFeedHandler)))
		r.Handle("POST /sweep", s.requireAPIKey(http.HandlerFunc(s.sweepHandler)))
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
}

// requireAPIKey accepts requests carrying one of the configured keys in X-API-Key or
// as a bearer token. Without configured keys write endpoints are disabled.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys := s.config.GetAPIKeys()
		if len(keys) == 0 {
			renderError(w, r, errors.New("write access is disabled"), http.StatusForbidden)
			return
		}

		key := r.Header.Get("X-API-Key")
		if key == "" {
			if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}
		if key == "" {
			renderError(w, r, errors.New("api key required"), http.StatusUnauthorized)
			return
		}

		for _, k := range keys {
			if k != "" && subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
				next.ServeHTTP(w, r)
				return
			}
		}
		lgr.Printf("[WARN] rejected api key from %s for %s %s", r.RemoteAddr, r.Method, r.URL.Path)
		renderError(w, r, errors.New("invalid api key"), http.StatusUnauthorized)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
