package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blogosphere/blog/internal/api"
	"github.com/blogosphere/blog/internal/api/handler"
	"github.com/blogosphere/blog/internal/core/ports"
	"github.com/blogosphere/blog/internal/core/service"
	mongostore "github.com/blogosphere/blog/internal/infrastructure/db/mongo"
	redisstore "github.com/blogosphere/blog/internal/infrastructure/db/redis"
	"github.com/blogosphere/blog/internal/infrastructure/db/sqlstore"
	"github.com/blogosphere/blog/internal/infrastructure/queue"
	"github.com/blogosphere/blog/internal/pkg/config"
	"github.com/blogosphere/blog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Migrate bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the blog HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", true, "apply pending schema migrations before serving")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, log := opts.Config, opts.Log

	// --- SQL store ---
	if opts.Migrate {
		if err := sqlstore.Migrate(ctx, storeConfig(cfg)); err != nil {
			return err
		}
	}
	db, err := sqlstore.Open(ctx, storeConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("driver", db.Driver()).Msg("sql store ready")

	// --- Sessions ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	checks := map[string]handler.PingFunc{
		"sql":   db.Ping,
		"redis": redisstore.Ping(rdb),
	}

	// --- Audit trail ---
	audit, closeAudit, err := openAudit(ctx, cfg, log, checks)
	if err != nil {
		return err
	}
	defer closeAudit()

	policy, err := service.PolicyByName(cfg.Policy)
	if err != nil {
		return err
	}

	posts := sqlstore.NewPostRepository(db)
	authSvc := service.NewAuthService(
		sqlstore.NewUserRepository(db),
		redisstore.NewSessionStore(rdb, cfg.Session.TTL),
		cfg.Session.Secret,
		cfg.Session.TTL,
	)

	e, err := api.NewRouter(api.Deps{
		Posts:    service.NewPostService(posts, policy, audit, log),
		Comments: service.NewCommentService(sqlstore.NewCommentRepository(db), posts, audit, log),
		Auth:     authSvc,
		Policy:   policy,
		Session: handler.SessionOptions{
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		},
		Checks: checks,
		Logger: log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("policy", cfg.Policy).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// openAudit returns the recorder mutations report to. With no Mongo URI
// configured the trail is disabled.
func openAudit(ctx context.Context, cfg *config.Config, log zerolog.Logger, checks map[string]handler.PingFunc) (ports.AuditRecorder, func(), error) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("audit trail disabled")
		return service.NopAudit{}, func() {}, nil
	}

	client, mdb, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "blog",
	})
	if err != nil {
		return nil, nil, err
	}

	repo := mongostore.NewAuditRepository(mdb)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = mongostore.Disconnect(client, shutdownTimeout)
		return nil, nil, err
	}
	checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

	dispatcher := queue.NewDispatcher(cfg.Mongo.AuditWorkers, repo, logger.Component("audit"))
	dispatcher.Start()
	log.Info().Int("workers", cfg.Mongo.AuditWorkers).Msg("audit trail enabled")

	return dispatcher, func() {
		dispatcher.Close()
		if err := mongostore.Disconnect(client, shutdownTimeout); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}, nil
}
