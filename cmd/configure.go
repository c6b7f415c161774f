package cmd

import (
	"fmt"

	"github.com/cqroot/prompt"
	"github.com/cqroot/prompt/input"
	"github.com/urfave/cli/v2"

	"github.com/djh816/Rustle/config"
)

func configureCmd() *cli.Command {
	return &cli.Command{
		Name:  "configure",
		Usage: "Store Reddit API credentials in the system keychain",
		Description: `Prompts for your Reddit script-app credentials and stores them
in the system keychain.

Create a 'script' type app at https://www.reddit.com/prefs/apps to
obtain a client ID and secret. Secrets are read without echo.`,
		Action: func(ctx *cli.Context) error {
			current := config.LoadSettings()

			clientID, err := prompt.New().Ask("Client ID:").Input(current.ClientID)
			if err != nil {
				return err
			}

			clientSecret, err := prompt.New().Ask("Client Secret:").Input("", input.WithEchoMode(input.EchoNone))
			if err != nil {
				return err
			}

			username, err := prompt.New().Ask("Reddit username:").Input(current.Username)
			if err != nil {
				return err
			}

			password, err := prompt.New().Ask("Reddit password:").Input("", input.WithEchoMode(input.EchoNone))
			if err != nil {
				return err
			}

			theme, err := prompt.New().Ask("Theme:").Choose([]string{"Dark", "Light"})
			if err != nil {
				return err
			}

			settings := config.Settings{
				ClientID:     clientID,
				ClientSecret: clientSecret,
				Username:     username,
				Password:     password,
				DarkMode:     theme == "Dark",
			}
			if err := config.SaveSettings(settings); err != nil {
				return err
			}

			fmt.Println("Credentials saved to the system keychain.")
			return nil
		},
	}
}
