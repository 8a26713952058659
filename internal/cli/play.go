package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/logging"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/tui"
)

// PlayCmd returns the play subcommand
func PlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: `Play a hot-seat game in this terminal.

Keys: 1-9 drop in that column, arrows and enter move and drop,
s chooses colours and starts, r restarts, q quits.`,
		RunE: runPlay,
	}

	cmd.Flags().Int("rows", 0, "Board rows (overrides BOARD_ROWS)")
	cmd.Flags().Int("columns", 0, "Board columns (overrides BOARD_COLUMNS)")
	cmd.Flags().String("log-file", "", "Write logs to this file instead of discarding them")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if rows, _ := cmd.Flags().GetInt("rows"); rows > 0 {
		cfg.BoardRows = rows
	}
	if columns, _ := cmd.Flags().GetInt("columns"); columns > 0 {
		cfg.BoardColumns = columns
	}

	log := logging.Nop()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		if log, err = logging.ToFile(path); err != nil {
			return err
		}
	}
	defer func(log *zap.SugaredLogger) { _ = log.Sync() }(log)

	sessionManager := game.NewSessionManager(game.Settings{
		Rows:             cfg.BoardRows,
		Columns:          cfg.BoardColumns,
		EndAnnounceDelay: cfg.EndAnnounceDelay,
	}, nil, log, nil)

	screen, err := tui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	app, err := tui.NewApp(ctx, screen, sessionManager)
	if err != nil {
		return err
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
