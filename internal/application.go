package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/stdio"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - serves games over newline-delimited JSON until the input is closed or a signal arrives.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	sessionRepo := repository.NewSessionRepository()
	gameManager := usecase.NewGameManager(logger, sessionRepo, conf.GameOptions())

	// run the line driver
	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("Serving games on stdio", "strict", conf.StrictMoves)
		server := stdio.New(logger, gameManager, out, conf.StrictMoves)
		serveErrCh <- server.Serve(ctx, in)
	}()

	select {
	case err := <-serveErrCh:
		if err != nil {
			return fmt.Errorf("stdio server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
