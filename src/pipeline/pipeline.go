// Package pipeline runs one build-complete notification from build URL to chat.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"build-chat/src/accounts"
	"build-chat/src/compose"
	"build-chat/src/contracts"
	"build-chat/src/provider"
	"build-chat/src/sanitize"
	"build-chat/src/store"
	"build-chat/src/transition"
)

// Dispatcher delivers results to chat.
type Dispatcher interface {
	Dispatch(ctx context.Context, results contracts.Results) error
}

// Printer echoes results locally.
type Printer interface {
	Print(results contracts.Results) error
}

// Config wires the pipeline stages.
type Config struct {
	Builds provider.BuildServer
	Source provider.SourceControl

	// Accounts is read only when a transition needs rendering.
	// AccountsConfigured false means Accounts is the empty fallback.
	Accounts           store.Store
	AccountsConfigured bool

	// Dispatcher and Printer are optional.
	Dispatcher Dispatcher
	Printer    Printer

	Log *slog.Logger
}

// Pipeline runs the stages in order.
type Pipeline struct {
	builds             provider.BuildServer
	resolver           *transition.Resolver
	accounts           store.Store
	accountsConfigured bool
	dispatcher         Dispatcher
	printer            Printer
	log                *slog.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		builds:             cfg.Builds,
		resolver:           transition.NewResolver(cfg.Source),
		accounts:           cfg.Accounts,
		accountsConfigured: cfg.AccountsConfigured,
		dispatcher:         cfg.Dispatcher,
		printer:            cfg.Printer,
		log:                cfg.Log,
	}
}

// Run computes the results for buildURL, sends them to chat and echoes them.
func (p *Pipeline) Run(ctx context.Context, buildURL string) error {
	results, err := p.BuildComplete(ctx, buildURL)
	if err != nil {
		return err
	}

	if p.dispatcher != nil && !results.Empty() {
		if err := p.dispatcher.Dispatch(ctx, results); err != nil {
			return err
		}
	}

	if p.printer != nil {
		if err := p.printer.Print(results); err != nil {
			return fmt.Errorf("failed to print results: %w", err)
		}
	}

	return nil
}

// BuildComplete fetches the build behind buildURL and its predecessor and
// renders the log line and the transition notification, if any. Builds on
// untracked branches, and builds missing from their own history, yield
// empty results.
func (p *Pipeline) BuildComplete(ctx context.Context, buildURL string) (contracts.Results, error) {
	var results contracts.Results
	p.log.Info("build complete", "url", sanitize.Redact(buildURL))

	ref, err := provider.ParseURL(buildURL)
	if err != nil {
		return results, err
	}

	build, err := p.builds.FetchBuild(ctx, ref)
	if err != nil {
		return results, err
	}
	if !transition.Tracked(build.SourceBranch) {
		p.log.Debug("branch not tracked", "branch", sanitize.Redact(build.SourceBranch))
		return results, nil
	}

	history, err := p.builds.FetchHistory(ctx, ref, build)
	if err != nil {
		return results, err
	}
	window, ok := transition.Window(history, build.ID)
	if !ok {
		p.log.Debug("build not in history", "id", build.ID, "history", len(history))
		return results, nil
	}

	results.LogMessages = []string{compose.LogLine(window[0])}

	events := transition.Detect(window)
	if len(events) == 0 {
		return results, nil
	}
	if err := p.resolver.Resolve(ctx, events); err != nil {
		return results, err
	}

	dir, err := p.directory(ctx)
	if err != nil {
		return results, err
	}

	name := compose.PipelineName(build.DefinitionName, ref.ReleaseProject)
	for _, ev := range events {
		results.Messages = append(results.Messages, compose.Notification(name, ev, dir))
	}

	return results, nil
}

func (p *Pipeline) directory(ctx context.Context) (*accounts.Directory, error) {
	if !p.accountsConfigured {
		p.log.Warn("account mapping not configured, chat handles will not resolve")
	}

	list, err := p.accounts.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts.NewDirectory(list, p.log), nil
}
