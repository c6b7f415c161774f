package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/djh816/Rustle/config"
	"github.com/djh816/Rustle/reddit"
)

// RootApp builds the CLI.
func RootApp() *cli.App {
	return &cli.App{
		Name:  "rustle",
		Usage: "Browse Reddit from the terminal",
		Description: `A terminal client for Reddit.

Rustle signs in with your Reddit script-app credentials (stored in the
system keychain), shows your home feed and subscribed subreddits, and
loads more posts as you scroll.

Flags can generally be set via environment variables, e.g.:

--config => RUSTLE_CONFIG=rustle.toml
--log-file => RUSTLE_LOG_FILE=rustle.log
`,
		Commands: []*cli.Command{
			browseCmd(),
			configureCmd(),
			feedsCmd(),
		},
		DefaultCommand: "browse",
	}
}

// Execute runs the CLI.
func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "rustle.toml",
		Usage:   "Path to the optional preferences file",
		EnvVars: []string{"RUSTLE_CONFIG"},
	}
}

// newClient builds the API client from the app config.
func newClient(cfg config.AppConfig) *reddit.Client {
	return reddit.New(reddit.Config{
		AuthBaseURL: cfg.AuthBaseURL,
		APIBaseURL:  cfg.APIBaseURL,
		UserAgent:   cfg.UserAgent,
	})
}
