// Package main provides the build-chat command, which posts build result
// transitions to Slack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"build-chat/src/config"
	"build-chat/src/logger"
	"build-chat/src/provider"
)

var logLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "build-chat",
	Short: "Post build result transitions to Slack",
	Long: `build-chat compares a finished Azure DevOps build with the build before it
on the same definition and branch. When the result changed, it looks up the
commit authors on GitHub and posts a notification to Slack.

All input comes from the environment:
  workflow_run_url           build resource of the triggering build (required)
  ado_user, ado_pass         Azure DevOps basic auth
  token, github_token        GitHub token
  slack_token                Slack bot token; Slack is skipped when empty
  log_channel                channel for log lines and notifications
  notification_channel       channel for notifications
  notify_authors=true        also send notifications to each author
  console_log=true           echo everything to stdout
  storage_connection_string  S3 store holding config/accounts.json
  accounts_postgres_dsn      Postgres database with an accounts table`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(os.Environ())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}

		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		log := logger.New(os.Stderr, level).With("run", uuid.NewString())

		p, closeFn, err := newPipeline(cfg, log, os.Stdout)
		if err != nil {
			return err
		}
		defer closeFn()

		return provider.WrapError(p.Run(cmd.Context(), cfg.WorkflowRunURL))
	},
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error); overrides log_level")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
