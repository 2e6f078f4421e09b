package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blogosphere/blog/internal/pkg/config"
	"github.com/blogosphere/blog/pkg/logger"
)

// RootOptions holds global flags and the state every subcommand shares.
type RootOptions struct {
	EnvFile string
	Pretty  bool

	Config *config.Config
	Log    zerolog.Logger
}

// NewRootCommand creates the root command of the blog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blog",
		Short: "Blogosphere - a minimal blog",
		Long:  "Blogosphere serves a small blog with posts, comments and a login gate.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	cmd.PersistentFlags().BoolVar(&opts.Pretty, "pretty", false, "human-friendly console logs")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", o.EnvFile, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	o.Config = cfg

	o.Log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  o.Pretty || (!cfg.IsProduction() && isTerminal(os.Stdout)),
		Output:  os.Stdout,
		Service: "blog",
		Caller:  !cfg.IsProduction(),
	})
	return nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
