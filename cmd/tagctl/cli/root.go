package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leondli/gallery/internal/client/api"
)

const defaultServer = "http://localhost:8080"

// app carries the resolved settings shared by all commands
type app struct {
	v          *viper.Viper
	configPath string
	log        zerolog.Logger
}

// NewRootCommand builds the tagctl command tree
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "tagctl",
		Short:         "Gallery tag client",
		Long:          "Create, attach and detach gallery tags from the command line and watch tag events live.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $HOME/.tagctl.yaml)")
	cmd.PersistentFlags().String("server", defaultServer, "gallery server URL")
	cmd.PersistentFlags().String("token", "", "access token")
	cmd.PersistentFlags().StringP("output", "o", "json", "output format (json, yaml)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = a.v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))
	_ = a.v.BindPFlag("output", cmd.PersistentFlags().Lookup("output"))
	_ = a.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newLoginCommand(a))
	cmd.AddCommand(newFoldersCommand(a))
	cmd.AddCommand(newFilesCommand(a))
	cmd.AddCommand(newTagsCommand(a))
	cmd.AddCommand(newWatchCommand(a))

	return cmd
}

func (a *app) init() error {
	// Silently ignore missing .env files
	_ = godotenv.Load(".env")

	if a.configPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			a.configPath = filepath.Join(home, ".tagctl.yaml")
		}
	}
	if a.configPath != "" {
		a.v.SetConfigFile(a.configPath)
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("TAGCTL")
	a.v.AutomaticEnv()

	if a.configPath != "" {
		if err := a.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString("log.level"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	return nil
}

func (a *app) client() *api.Client {
	c := api.New(a.v.GetString("server"))
	if token := a.v.GetString("token"); token != "" {
		c.SetToken(token)
	}
	return c
}

func (a *app) print(cmd *cobra.Command, v interface{}) error {
	return render(cmd.OutOrStdout(), a.v.GetString("output"), v)
}
