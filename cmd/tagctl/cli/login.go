package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type credentials struct {
	Server string `yaml:"server"`
	Token  string `yaml:"token"`
}

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	var save bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print an access token",
		Long:  "Exchanges credentials for an access token. With --save the token is written to the config file for later commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("TAGCTL_PASSWORD")
			}

			c := a.client()
			out, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if save {
				if err := saveCredentials(a.configPath, credentials{
					Server: a.v.GetString("server"),
					Token:  out.AccessToken,
				}); err != nil {
					return err
				}
				a.log.Info().Str("path", a.configPath).Msg("Saved access token")
			}

			return a.print(cmd, out)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (or TAGCTL_PASSWORD)")
	cmd.Flags().BoolVar(&save, "save", false, "store the token in the config file")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func saveCredentials(path string, creds credentials) error {
	if path == "" {
		return fmt.Errorf("no config path to save to")
	}
	raw, err := yaml.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
