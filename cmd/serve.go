package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/ytbak/internal/server"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the backup web UI until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	handler := server.NewBackupHandler(server.BackupHandlerOpts{
		Session:    r.session,
		Engine:     r.engine,
		OutputRoot: r.config.Backup.OutputRoot,
		Logger:     r.logger,
	})

	router := server.NewBasicRouter()
	router.Use(server.WithLogging(r.logger))
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("serving backup UI", "addr", serverAddr, "paths", router.Paths())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	r.writePlain("→ Serving at http://%s (ctrl-c to stop)\n", serverAddr)

	if cmd.Bool("open") {
		time.Sleep(100 * time.Millisecond)
		if err := shared.OpenBrowser(fmt.Sprintf("http://%s", serverAddr)); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-interrupt:
		r.logger.Info("shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
