package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
)

// ProjectService is the project surface used by the API.
type ProjectService interface {
	Create(ctx context.Context, creator project.Creator, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	View(ctx context.Context, id, viewerID string) (*project.Project, error)
	ToggleLike(ctx context.Context, id, userID string) (project.LikeResult, error)
	Share(ctx context.Context, id string) (int64, error)
}

// CommentService is the comment surface used by the API.
type CommentService interface {
	Add(ctx context.Context, projectID string, author comment.Author, text string) (*comment.Comment, error)
	Reply(ctx context.Context, parentID string, author comment.Author, text string) (*comment.Comment, error)
	ToggleLike(ctx context.Context, id, userID string) (comment.LikeResult, error)
	List(ctx context.Context, projectID string, mode comment.SortMode) ([]comment.Comment, error)
}

// UserService is the profile surface used by the API.
type UserService interface {
	Get(ctx context.Context, id string) (*user.User, error)
	Profile(ctx context.Context, id string, mode project.PortfolioSort) (*user.Profile, error)
}

// ActivityService is the engagement log surface used by the API.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Feed holds the discovery snapshot.
type Feed interface {
	Snapshot() discovery.Snapshot
	Refresh(ctx context.Context) (discovery.Snapshot, bool)
}

// Config wires the HTTP server.
type Config struct {
	Projects ProjectService
	Comments CommentService
	Users    UserService
	Activity ActivityService
	Feed     Feed
	// Auth identifies API callers. Nil leaves every request anonymous.
	Auth func(http.Handler) http.Handler
	// MCP is mounted at /mcp when set.
	MCP       http.Handler
	HTTP      config.HTTPConfig
	Discovery config.DiscoveryConfig
	Logger    *slog.Logger
}

// Server holds the API handlers.
type Server struct {
	projects  ProjectService
	comments  CommentService
	users     UserService
	activity  ActivityService
	feed      Feed
	discovery config.DiscoveryConfig
	logger    *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	srv := &Server{
		projects:  cfg.Projects,
		comments:  cfg.Comments,
		users:     cfg.Users,
		activity:  cfg.Activity,
		feed:      cfg.Feed,
		discovery: cfg.Discovery,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// MCP authenticates inside its own middleware chain.
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(corsOptions(cfg.HTTP)))
		if cfg.HTTP.RateLimitRequests > 0 && cfg.HTTP.RateLimitWindow > 0 {
			r.Use(httprate.LimitByIP(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
		}
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}

		r.Get("/filters", srv.handleFilters)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", srv.handleDiscover)
			r.With(RequireUser).Post("/", srv.handleCreateProject)

			r.Route("/{projectID}", func(r chi.Router) {
				r.Get("/", srv.handleGetProject)
				r.Get("/related", srv.handleRelated)
				r.Get("/activity", srv.handleProjectActivity)
				r.Post("/share", srv.handleShareProject)
				r.With(RequireUser).Post("/like", srv.handleLikeProject)
				r.Get("/comments", srv.handleListComments)
				r.With(RequireUser).Post("/comments", srv.handleAddComment)
			})
		})

		r.Route("/comments/{commentID}", func(r chi.Router) {
			r.Use(RequireUser)
			r.Post("/replies", srv.handleReply)
			r.Post("/like", srv.handleLikeComment)
		})

		r.Get("/users/{userID}", srv.handleProfile)
		r.With(RequireUser).Post("/feed/refresh", srv.handleRefreshFeed)
	})

	return r
}

func corsOptions(cfg config.HTTPConfig) cors.Options {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
