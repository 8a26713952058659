package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/logging"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/telemetry"
	transportHttp "github.com/iamasit07/4-in-a-row/hotseat/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/hotseat/pkg/auth"
)

const shutdownTimeout = 30 * time.Second

// ServeCmd returns the serve subcommand
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game over HTTP and WebSocket",
		Long: `Serve the browser client and its WebSocket endpoint.

Examples:
  # In-memory sessions on the default port
  connect4 serve

  # Persist sessions in SQLite
  STORE_DRIVER=sqlite SQLITE_PATH=games.db connect4 serve --port 9000
`,
		RunE: runServe,
	}

	cmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	log, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.InsecureSecret() {
		log.Warnw("SESSION_SECRET is unset or the default; anyone can forge resume tokens", "env", cfg.Env)
	}

	var tracer trace.Tracer
	if cfg.OTelEnabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warnw("Failed to flush traces", "error", err)
			}
		}()
		tracer = telemetry.Tracer("session")
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	sessionManager := game.NewSessionManager(game.Settings{
		Rows:             cfg.BoardRows,
		Columns:          cfg.BoardColumns,
		EndAnnounceDelay: cfg.EndAnnounceDelay,
	}, store, log, tracer)

	cleanupWorker := cleanup.NewWorker(sessionManager, store, cfg.CleanupInterval, cfg.SessionTTL, log)
	go cleanupWorker.Start(ctx)

	issuer := auth.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	wsHandler := websocket.NewHandler(websocket.NewConnectionManager(), sessionManager, issuer, cfg.AllowedOrigins, log)

	router := transportHttp.NewRouter(transportHttp.RouterDeps{
		SessionManager: sessionManager,
		WSHandler:      wsHandler,
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    cfg.IsDevelopment(),
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("Server starting", "port", cfg.Port, "store", cfg.StoreDriver,
			"rows", cfg.BoardRows, "columns", cfg.BoardColumns)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited gracefully")
	return nil
}
