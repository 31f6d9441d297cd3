// Package accounts maps source control and build system users to chat handles.
package accounts

import (
	"log/slog"

	"build-chat/src/provider"
	"build-chat/src/sanitize"
)

// ScheduledRequester is shown for builds queued by automation.
const ScheduledRequester = "Scheduled"

// automationDisplayNames are requester display names of automated triggers.
var automationDisplayNames = map[string]bool{
	"Microsoft.VisualStudio.Services.TFS": true,
	"GitHub":                              true,
}

// Account cross-references one person's handles.
type Account struct {
	GitHub string `json:"github"`
	Slack  string `json:"slack"`
	VSTS   string `json:"vsts"`
}

// Directory indexes accounts by GitHub login and by build system user.
// It is built once per run and never modified.
type Directory struct {
	byGitHub map[string]Account
	byVSTS   map[string]Account
	log      *slog.Logger
}

// NewDirectory indexes accounts. When handles repeat, the later record wins.
func NewDirectory(accounts []Account, log *slog.Logger) *Directory {
	d := &Directory{
		byGitHub: make(map[string]Account, len(accounts)),
		byVSTS:   make(map[string]Account, len(accounts)),
		log:      log,
	}
	for _, a := range accounts {
		d.byGitHub[a.GitHub] = a
		d.byVSTS[a.VSTS] = a
	}
	return d
}

// Requester renders the user who queued a build.
func (d *Directory) Requester(id provider.Identity, mention bool) string {
	if automationDisplayNames[id.DisplayName] {
		return ScheduledRequester
	}
	if a, ok := d.byVSTS[id.UniqueName]; ok {
		return handle(a.Slack, mention)
	}
	return id.UniqueName
}

// Authors renders GitHub logins as chat handles, keeping unmapped logins as is.
func (d *Directory) Authors(logins []string, mention bool) []string {
	names := make([]string, 0, len(logins))
	for _, login := range logins {
		if a, ok := d.byGitHub[login]; ok {
			names = append(names, handle(a.Slack, mention))
			continue
		}
		d.log.Warn("no chat account for author", "github", sanitize.Redact(login))
		names = append(names, login)
	}
	return names
}

// ChatHandles returns the chat handles of the mapped logins only.
func (d *Directory) ChatHandles(logins []string) []string {
	var handles []string
	for _, login := range logins {
		if a, ok := d.byGitHub[login]; ok && a.Slack != "" {
			handles = append(handles, a.Slack)
		}
	}
	return handles
}

func handle(name string, mention bool) string {
	if mention {
		return "@" + name
	}
	return name
}
