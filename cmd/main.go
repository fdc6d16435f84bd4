package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "engage-escrow/internal/adapter/http"
	"engage-escrow/internal/adapter/memory"
	"engage-escrow/internal/adapter/oracle"
	"engage-escrow/internal/adapter/postgres"
	"engage-escrow/internal/adapter/usecase"
	"engage-escrow/internal/config"
	"engage-escrow/internal/config/configs"
	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
	"engage-escrow/internal/db"
	"engage-escrow/internal/observability"
)

// main is the entry point of the escrow service. The serve command loads
// configuration, opens the configured ledger backend, seeds genesis wallets
// and starts the HTTP server. On receiving a termination signal it
// gracefully shuts down the server.
func main() {
	rootCmd := &cobra.Command{
		Use:           "engage-escrow",
		Short:         "milestone escrow for influencer campaigns",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		eventsCommand(),
		signReportCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg configs.Logger) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	switch cfg.SlogFormat() {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg, newLogger(cfg.Log))
		},
	}
}

func serve(parent context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Otel.Enabled {
		shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
			ServiceName: cfg.Otel.ServiceName,
			Environment: cfg.Env,
			Endpoint:    cfg.Otel.Endpoint,
			Insecure:    cfg.Otel.Insecure,
			Headers:     observability.ParseHeaders(cfg.Otel.Headers),
			SampleRatio: cfg.Otel.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(flushCtx); err != nil {
				logger.Error("tracer shutdown error", slog.Any("error", err))
			}
		}()
		logger.Info("tracing enabled", slog.String("endpoint", cfg.Otel.Endpoint))
	}

	repo, closeRepo, err := openLedger(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	created, err := db.SeedGenesis(ctx, repo, cfg.Ledger.Genesis)
	if err != nil {
		return fmt.Errorf("seed genesis: %w", err)
	}
	if created > 0 {
		logger.Info("genesis wallets created", slog.Int("count", created))
	}

	metrics := observability.New()
	svc := usecase.NewEscrowUseCase(repo, usecase.Config{
		CampaignRent: cfg.Ledger.CampaignRent,
		VaultRent:    cfg.Ledger.VaultRent,
	}, usecase.WithLogger(logger), usecase.WithRecorder(metrics))

	handler := httpadapter.NewHandler(svc, logger, httpadapter.Options{
		Auth: httpadapter.NewAuthenticator(httpadapter.AuthConfig{
			Enabled:  cfg.Auth.Enabled,
			Secret:   cfg.Auth.Secret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
			Leeway:   cfg.Auth.Leeway,
		}, logger),
		OracleLimiter: httpadapter.NewRateLimiter(cfg.HTTP.OracleRPM, cfg.HTTP.OracleBurst),
		Metrics:       metrics,
		TokenDecimals: cfg.Ledger.TokenDecimals,
	})
	if !cfg.Auth.Enabled {
		logger.Warn("authentication disabled, trusting the " + httpadapter.WalletHeader + " header")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("ledger", cfg.Ledger.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// openLedger returns the configured repository and a function releasing it.
func openLedger(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.LedgerRepository, func(), error) {
	if cfg.Ledger.Backend == configs.BackendMemory {
		logger.Warn("using the in-memory ledger, state is lost on exit")
		return memory.NewLedgerRepository(), func() {}, nil
	}

	if cfg.Psql.RunMigrations {
		version, err := db.Migrate(cfg.Psql.Addr.String())
		if err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", slog.Uint64("version", uint64(version)))
	}
	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection: %w", err)
	}
	return postgres.NewLedgerRepository(pool), pool.Close, nil
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg.Log)
			version, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return err
			}
			logger.Info("migrations applied", slog.Uint64("version", uint64(version)))
			return nil
		},
	}
}

func eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "stream committed campaign events as JSON lines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg.Log)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := postgres.NewEventListener(cfg.Psql.Addr.String(),
				cfg.Psql.ListenerMinReconnect, cfg.Psql.ListenerMaxReconnect, logger)
			if err != nil {
				return err
			}
			defer func() { _ = listener.Close() }()

			enc := json.NewEncoder(cmd.OutOrStdout())
			err = listener.Run(ctx, func(e domain.Event) error {
				return enc.Encode(e)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func signReportCommand() *cobra.Command {
	var (
		campaign string
		metrics  domain.Metrics
	)
	cmd := &cobra.Command{
		Use:   "sign-report",
		Short: "sign a metrics report with the oracle key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			key, err := oracle.ParseKey(cfg.Oracle.Key)
			if err != nil {
				return err
			}
			addr, err := domain.ParseAddress(campaign)
			if err != nil {
				return err
			}
			report, err := oracle.Sign(key, addr, metrics)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&campaign, "campaign", "", "campaign address")
	flags.Uint64Var(&metrics.Likes, "likes", 0, "cumulative likes")
	flags.Uint64Var(&metrics.Comments, "comments", 0, "cumulative comments")
	flags.Uint64Var(&metrics.Views, "views", 0, "cumulative views")
	flags.Uint64Var(&metrics.Shares, "shares", 0, "cumulative shares")
	_ = cmd.MarkFlagRequired("campaign")
	return cmd
}
