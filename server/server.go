package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/autoreply/pkg/domain"
	"github.com/umputun/autoreply/pkg/platform"
	"github.com/umputun/autoreply/pkg/processor"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/rules_store.go -pkg mocks -skip-ensure -fmt goimports . RulesStore
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History
//go:generate moq -out mocks/event_processor.go -pkg mocks -skip-ensure -fmt goimports . EventProcessor
//go:generate moq -out mocks/media.go -pkg mocks -skip-ensure -fmt goimports . Media
//go:generate moq -out mocks/pinger.go -pkg mocks -skip-ensure -fmt goimports . Pinger

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	rules     RulesStore
	history   History
	processor EventProcessor
	media     Media
	db        Pinger
	gatherer  prometheus.Gatherer
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server and webhook configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetWebhookConfig() (verifyToken, appSecret string)
}

// RulesStore is the per-post rules storage
type RulesStore interface {
	Get(ctx context.Context, postID string) domain.PostRuleConfig
	Update(ctx context.Context, postID string, fn func(cfg *domain.PostRuleConfig) error) (domain.PostRuleConfig, error)
	List(ctx context.Context) []domain.PostRuleConfig
}

// History reads responded comments
type History interface {
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryEntry, error)
	Count(ctx context.Context) (int, error)
}

// EventProcessor handles webhook deliveries
type EventProcessor interface {
	ProcessPayload(ctx context.Context, body []byte) (processor.Summary, error)
}

// Media reads posts and comments of the account from the platform
type Media interface {
	ListMedia(ctx context.Context, limit int) ([]platform.Media, error)
	GetMedia(ctx context.Context, mediaID string) (platform.Media, error)
	ListComments(ctx context.Context, mediaID string) ([]platform.Comment, error)
}

// Pinger checks a storage connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds server dependencies
type Deps struct {
	Config    ConfigProvider
	Rules     RulesStore
	History   History
	Processor EventProcessor
	Media     Media               // posts browsing, /api/get_posts and friends disabled if nil
	DB        Pinger              // history database, reported by status if set
	Gatherer  prometheus.Gatherer // metrics source, /metrics disabled if nil
}

// New initializes a new server instance
func New(deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:    deps.Config,
		rules:     deps.Rules,
		history:   deps.History,
		processor: deps.Processor,
		media:     deps.Media,
		db:        deps.DB,
		gatherer:  deps.Gatherer,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and blocks until ctx is done and in-flight requests are finished
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	// in-flight handlers are done once shutdown returns
	<-stopped
	return nil
}

// ServeHTTP makes server usable as http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("autoreply", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// platform webhook
	s.router.HandleFunc("GET /webhook", s.webhookVerifyHandler)
	s.router.HandleFunc("POST /webhook", s.webhookEventHandler)

	// rules management
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /add_rule", s.addRuleHandler)
		r.HandleFunc("POST /delete_rule", s.deleteRuleHandler)
		r.HandleFunc("GET /list_rules", s.listRulesHandler)
		r.HandleFunc("GET /rules/{post_id}", s.getRulesHandler)
		r.HandleFunc("POST /toggle_auto", s.toggleAutoHandler)
		r.HandleFunc("POST /set_default", s.setDefaultHandler)
		r.HandleFunc("POST /set_dm", s.setDMHandler)
		r.HandleFunc("GET /history", s.historyHandler)
		r.HandleFunc("POST /process_comments", s.processCommentsHandler)
		r.HandleFunc("GET /v1/status", s.statusHandler)

		if s.media != nil {
			r.HandleFunc("GET /get_posts", s.getPostsHandler)
			r.HandleFunc("GET /post/{post_id}", s.getPostHandler)
			r.HandleFunc("GET /comments/{post_id}", s.getCommentsHandler)
		}
	})

	if s.gatherer != nil {
		s.router.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"status": "error", "message": errMsg})
}
