package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/devfolio/internal/config"
)

var (
	// Global flags
	usernameFlag string

	// Shared state injected into commands
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devfolio",
	Short: "Portfolio page generated from a GitHub profile",
	Long: `devfolio renders a portfolio page from a GitHub user's public profile and
repositories. Results are cached locally and served stale when GitHub is
unreachable.

Configuration comes from DEVFOLIO_* environment variables, optionally seeded
from the TOML file named by DEVFOLIO_CONFIG.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}

		if usernameFlag != "" {
			loaded.GitHubUsername = usernameFlag
		}
		if err := loaded.Validate(); err != nil {
			return err
		}

		cfg = loaded
		logger = newLogger(cmd.ErrOrStderr(), cfg)
		slog.SetDefault(logger)

		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and runs it with a
// context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "devfolio:", err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&usernameFlag, "username", "u", "", "GitHub username (overrides DEVFOLIO_GITHUB_USERNAME)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newBuildCmd())
}

// newLogger builds the process logger from the configured level and format.
func newLogger(w io.Writer, c *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}

	if c.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
