package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/djh816/Rustle/config"
	"github.com/djh816/Rustle/feed"
	"github.com/djh816/Rustle/tui"
)

func browseCmd() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Open the feed browser",
		Description: `Opens the scrolling feed browser.

On first launch (no stored credentials) the settings form is shown;
afterwards the home feed loads immediately. Logs are kept off the
terminal while the browser owns it: pass --log-file to capture them.`,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to this file instead of discarding them",
				EnvVars: []string{"RUSTLE_LOG_FILE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			// The TUI owns the terminal; logs go to a file or nowhere.
			if path := ctx.String("log-file"); path != "" {
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("could not open log file: %w", err)
				}
				defer f.Close()
				log.SetOutput(f)
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetOutput(io.Discard)
			}

			cfg, err := config.LoadAppConfig(ctx.String("config"))
			if err != nil {
				return err
			}
			settings := config.LoadSettings()

			ctrl := feed.New(ctx.Context, newClient(cfg), settings, feed.Options{
				Threshold: cfg.Threshold,
				Cooldown:  cfg.Cooldown(),
			})
			if settings.HasCredentials() {
				ctrl.LoadSubreddits()
				ctrl.SwitchFeed(feed.Home)
			}

			program := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("browser exited with an error: %w", err)
			}
			return nil
		},
	}
}
