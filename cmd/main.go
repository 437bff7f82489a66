package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytbak/internal/auth"
	"github.com/desertthunder/ytbak/internal/services"
	"github.com/desertthunder/ytbak/internal/shared"
	"github.com/desertthunder/ytbak/internal/tasks"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	store := auth.NewTokenStore(config.Credentials.TokenPath)
	session := auth.NewSession(auth.SessionOpts{
		ClientSecretPath: config.Credentials.ClientSecretPath,
		Store:            store,
		Logger:           logger,
	})

	svc := services.NewYouTubeService(services.YouTubeOpts{
		PageSize: config.Backup.PageSize,
		Tokens:   session,
	})

	engine := tasks.NewBackupEngine(svc, tasks.BackupOpts{
		RateLimit:      config.Backup.RateLimit,
		JoinTimeout:    config.Backup.Timeout(),
		IncludeListIDs: config.Backup.IncludeListIDs,
		Logger:         logger,
	})

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Session: session,
		Service: svc,
		Engine:  engine,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:    "ytbak",
		Usage:   "Back up YouTube playlists to JSON files",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
