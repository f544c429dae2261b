// Package cli implements the command-line interface for notelab.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notelab/notelab-cli/internal/config"
	"github.com/notelab/notelab-cli/internal/logging"
	"github.com/notelab/notelab-cli/internal/output"
)

// loggerContextKey is a type for context keys to avoid collisions
type loggerContextKey struct{}

// NewRootCmd creates an isolated root command instance. Every invocation
// gets its own flags, so tests can run commands in parallel without shared
// state.
func NewRootCmd() *cobra.Command {
	flags := &Flags{
		ConfigFile: config.DefaultPath(),
		LogLevel:   "info",
	}

	cmd := &cobra.Command{
		Use:   "notelab",
		Short: "Command-line client for the notelab backend",
		Long: `notelab is a command-line client for the notelab backend: notebooks and
sources, AI chat, GitHub repository browsing, wellness chat with streamed
research, coding-agent token management, and achievements.

All data lives in the backend; the client keeps only an optional local
chat history.`,
		PersistentPreRunE: createSetupLogging(flags),
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", flags.ConfigFile, "Path to configuration file")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(createLoginCmd(flags))
	cmd.AddCommand(createLogoutCmd(flags))
	cmd.AddCommand(createWhoamiCmd(flags))
	cmd.AddCommand(createSubscriptionCmd(flags))
	cmd.AddCommand(createGitHubCmd(flags))
	cmd.AddCommand(createNotebooksCmd(flags))
	cmd.AddCommand(createChatCmd(flags))
	cmd.AddCommand(createWellnessCmd(flags))
	cmd.AddCommand(createTokensCmd(flags))
	cmd.AddCommand(createAchievementsCmd(flags))
	cmd.AddCommand(createChallengesCmd(flags))
	cmd.AddCommand(createVersionCmd(flags))

	return cmd
}

// ExecuteWithContext runs the CLI, canceling in-flight work on interrupt.
func ExecuteWithContext(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		output.Warn("Interrupt received, canceling...")
		cancel()
	}()

	return NewRootCmd().ExecuteContext(ctx)
}

// createSetupLogging builds the PersistentPreRunE that installs an isolated
// logger into the command context.
func createSetupLogging(flags *Flags) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		// Log to stderr to keep stdout clean for output
		logger := logging.New(os.Stderr, flags.LogLevel)
		cmd.SetContext(context.WithValue(cmd.Context(), loggerContextKey{}, logger))
		return nil
	}
}

// loggerFromContext returns the command's isolated logger, falling back to
// the global logger when the pre-run hook did not run (direct RunE calls in
// tests).
func loggerFromContext(ctx context.Context) *logrus.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*logrus.Logger); ok {
		return logger
	}
	return logrus.StandardLogger()
}
