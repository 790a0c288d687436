package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	ToggleLike(ctx context.Context, id, userID string) (project.LikeResult, error)
}

// CommentService defines comment operations needed by MCP.
type CommentService interface {
	Add(ctx context.Context, projectID string, author comment.Author, text string) (*comment.Comment, error)
	List(ctx context.Context, projectID string, mode comment.SortMode) ([]comment.Comment, error)
}

// UserService defines profile operations needed by MCP.
type UserService interface {
	Get(ctx context.Context, id string) (*user.User, error)
	Profile(ctx context.Context, id string, mode project.PortfolioSort) (*user.Profile, error)
}

// Feed exposes the current discovery snapshot.
type Feed interface {
	Snapshot() discovery.Snapshot
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Comments CommentService
	Users    UserService
	Feed     Feed
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	// DefaultUser is attributed to every call when auth is off.
	DefaultUser string
	Discovery   config.DiscoveryConfig
	Logger      *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "showcase",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only and never authenticates.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultUser))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	t := &tools{services: cfg.Services, discovery: cfg.Discovery}
	t.register(server)

	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)
}
