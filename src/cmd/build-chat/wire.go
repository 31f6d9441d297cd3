package main

import (
	"io"
	"log/slog"

	"build-chat/src/azdo"
	"build-chat/src/chat"
	"build-chat/src/config"
	"build-chat/src/console"
	"build-chat/src/github"
	"build-chat/src/pipeline"
	"build-chat/src/store"
)

// newPipeline builds the pipeline described by cfg. The returned function
// closes the account store.
func newPipeline(cfg *config.Config, log *slog.Logger, stdout io.Writer) (*pipeline.Pipeline, func() error, error) {
	accounts, configured, err := store.Open(cfg.StorageConnectionString, cfg.AccountsPostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	pc := pipeline.Config{
		Builds:             azdo.NewProvider(azdo.NewClient(cfg.ADOUser, cfg.ADOPass, cfg.HTTPTimeout)),
		Source:             github.NewClient(cfg.GitHubToken(), cfg.HTTPTimeout).WithBaseURL(cfg.GitHubAPIURL),
		Accounts:           accounts,
		AccountsConfigured: configured,
		Log:                log,
	}

	if cfg.SlackToken != "" {
		pc.Dispatcher = chat.NewDispatcher(
			chat.NewClient(cfg.SlackToken, cfg.SlackAPIURL, cfg.HTTPTimeout),
			chat.Options{
				LogChannel:          cfg.LogChannel,
				NotificationChannel: cfg.NotificationChannel,
				NotifyAuthors:       bool(cfg.NotifyAuthors),
			},
			log,
		)
	}

	if cfg.ConsoleLog {
		pc.Printer = console.NewPrinter(stdout)
	}

	return pipeline.New(pc), accounts.Close, nil
}
