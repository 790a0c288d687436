package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/discovery"
	"github.com/rpggio/showcase/internal/domain/activity"
	"github.com/rpggio/showcase/internal/domain/comment"
	"github.com/rpggio/showcase/internal/domain/project"
	"github.com/rpggio/showcase/internal/domain/user"
	"github.com/rpggio/showcase/internal/mcp"
	"github.com/rpggio/showcase/internal/metrics"
	"github.com/rpggio/showcase/internal/recordsource"
	"github.com/rpggio/showcase/internal/sqlite"
	"github.com/rpggio/showcase/internal/transport"
)

// localUserID owns every write when auth is disabled.
const localUserID = "local"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("SHOWCASE_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	keyRepo := sqlite.NewAPIKeyRepository(db)

	projectSvc := project.NewService(projectRepo, activityRepo, logger)
	commentSvc := comment.NewService(commentRepo, projectRepo, activityRepo, logger)
	userSvc := user.NewService(userRepo, projectSvc, logger)
	activitySvc := activity.NewService(activityRepo, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authEnabled := cfg.Auth.Enabled && cfg.Transport.Mode != "stdio"
	if !authEnabled {
		if err := ensureLocalUser(ctx, userSvc); err != nil {
			logger.Error("failed to create local user", "error", err)
			os.Exit(1)
		}
	}

	src, err := newSource(cfg, projectSvc, logger)
	if err != nil {
		logger.Error("failed to configure record source", "error", err)
		os.Exit(1)
	}
	feed := discovery.NewFeed(src,
		discovery.WithLogger(logger),
		discovery.WithFetchHook(func(snap discovery.Snapshot, elapsed time.Duration, applied bool) {
			metrics.RecordSourceFetch(elapsed, len(snap.Projects), snap.Unavailable(), applied)
		}),
	)
	if snap, _ := feed.Refresh(ctx); snap.Unavailable() {
		logger.Warn("initial project load failed", "error", snap.Err)
	}
	go feed.Run(ctx, cfg.Source.RefreshInterval)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projectSvc,
			Comments: commentSvc,
			Users:    userSvc,
			Feed:     feed,
		},
		Resolver:      keyRepo,
		AuthEnabled:   authEnabled,
		TransportMode: cfg.Transport.Mode,
		DefaultUser:   localUserID,
		Discovery:     cfg.Discovery,
		Logger:        logger,
	})

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(ctx, logger, mcpServer)
		return
	}

	auth := transport.AuthMiddleware(keyRepo)
	if !authEnabled {
		auth = transport.NoAuthMiddleware(localUserID)
	}
	router := transport.NewServer(transport.Config{
		Projects:  projectSvc,
		Comments:  commentSvc,
		Users:     userSvc,
		Activity:  activitySvc,
		Feed:      feed,
		Auth:      auth,
		MCP:       mcp.NewHTTPHandler(mcpServer),
		HTTP:      cfg.HTTP,
		Discovery: cfg.Discovery,
		Logger:    logger,
	})
	runHTTPMode(ctx, logger, router, cfg.Server.Host, cfg.Server.Port, authEnabled)
}

// newSource picks the discovery record source and guards it with a circuit
// breaker.
func newSource(cfg config.Config, local discovery.Source, logger *slog.Logger) (discovery.Source, error) {
	src := local
	if cfg.Source.Kind == "rest" {
		rest, err := recordsource.NewREST(cfg.Source.REST, nil, logger)
		if err != nil {
			return nil, err
		}
		src = rest
	}
	logger.Info("record source configured", "kind", cfg.Source.Kind, "refresh_interval", cfg.Source.RefreshInterval)
	return recordsource.NewBreaker(cfg.Source.Kind, src, cfg.Breaker, logger), nil
}

func ensureLocalUser(ctx context.Context, users *user.Service) error {
	_, err := users.Get(ctx, localUserID)
	if err == nil || !errors.Is(err, user.ErrUserNotFound) {
		return err
	}
	_, err = users.Create(ctx, user.CreateRequest{
		ID:         localUserID,
		Name:       "Local Developer",
		University: "Makerere University",
	})
	return err
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport", "auth", "disabled")

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int, authEnabled bool) {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "auth", authEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
