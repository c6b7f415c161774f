package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/djh816/Rustle/config"
	"github.com/djh816/Rustle/feed"
)

func feedsCmd() *cli.Command {
	return &cli.Command{
		Name:  "feeds",
		Usage: "List the feeds available to browse",
		Description: `Prints the home feed followed by your subscribed subreddits,
one per line, in the order the browser offers them.`,
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadAppConfig(ctx.String("config"))
			if err != nil {
				return err
			}

			settings := config.LoadSettings()
			if !settings.HasCredentials() {
				return errors.New("no credentials configured, run 'rustle configure' first")
			}

			client := newClient(cfg)
			if err := client.Authenticate(ctx.Context, settings.ClientID, settings.ClientSecret, settings.Username, settings.Password); err != nil {
				return err
			}

			names, err := client.SubscribedSubreddits(ctx.Context)
			if err != nil {
				return err
			}

			fmt.Println(feed.Home.String())
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
