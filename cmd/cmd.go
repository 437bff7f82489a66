// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// initCommand scaffolds a config file.
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Init,
	}
}

// authCommand handles authorization operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Google authorization",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authorize via browser with a local callback server",
				Action: r.AuthLogin,
			},
			{
				Name:   "url",
				Usage:  "Print the consent URL for manual authorization",
				Action: r.AuthURL,
			},
			{
				Name:  "code",
				Usage: "Exchange a pasted authorization code for a token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "code"},
				},
				Action: r.AuthCode,
			},
			{
				Name:   "status",
				Usage:  "Check the stored credential against the tokeninfo endpoint",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand lists the channel's playlists.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"ls"},
		Usage:   "List playlists on the authenticated channel",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Playlists,
	}
}

// backupCommand handles backup runs
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Back up playlists to JSON files",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Back up playlists by id (defaults to every playlist)",
				ArgsUsage: "[id ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output root directory (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the output directory when done",
					},
				},
				Action: r.BackupRun,
			},
			{
				Name:    "ui",
				Aliases: []string{"tui", "interactive"},
				Usage:   "Interactive TUI for selecting playlists to back up",
				Action:  r.TUI,
			},
		},
	}
}

// serveCommand starts the web surface.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the backup web UI",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the browser after the server starts",
			},
		},
		Action: r.Serve,
	}
}
