package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"build-chat/src/accounts"
	"build-chat/src/logger"
	"build-chat/src/provider"
	"build-chat/src/transition"
)

func TestPipelineName(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		release    bool
		want       string
	}{
		{name: "release", definition: "VS Code", release: true, want: "VS Code Release Build"},
		{name: "continuous", definition: "VS Code", release: false, want: "VS Code Continuous Build"},
		{name: "other", definition: "Monaco Editor", release: true, want: "Monaco Editor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PipelineName(tt.definition, tt.release))
		})
	}
}

func TestLogLine(t *testing.T) {
	b := provider.Build{
		ID:           2,
		SourceBranch: "refs/heads/release/1.90",
		Result:       provider.ResultFailed,
		QueueTime:    "2024-01-01T10:00:00Z",
		StartTime:    "2024-01-01T10:01:00Z",
		FinishTime:   "2024-01-01T10:30:00Z",
	}

	assert.Equal(t,
		"Id: 2 | Branch: release/1.90 | Result: failed | Queue: 2024-01-01T10:00:00Z | Start: 2024-01-01T10:01:00Z | Finish: 2024-01-01T10:30:00Z",
		LogLine(b))
}

func TestNotification(t *testing.T) {
	dir := accounts.NewDirectory([]accounts.Account{
		{GitHub: "alice", Slack: "alice_s", VSTS: "alice@x"},
	}, logger.Discard())

	ev := transition.Event{
		Current: provider.Build{
			ID:           2,
			SourceBranch: "refs/heads/main",
			Result:       provider.ResultSucceeded,
			Requester:    provider.Identity{DisplayName: "Alice", UniqueName: "alice@x"},
			WebURL:       "https://dev.azure.com/b/2",
		},
		Authors:    []string{"bob", "alice"},
		ChangesURL: "https://github.com/microsoft/vscode/compare/aaaaaaa...bbbbbbb",
	}

	msg := Notification("VS Code Continuous Build", ev, dir)
	assert.Equal(t, "VS Code Continuous Build\n"+
		"Result: succeeded | Branch: main | Requester: alice_s | Authors: alice_s, bob\n"+
		"[Build](https://dev.azure.com/b/2) | [Changes](https://github.com/microsoft/vscode/compare/aaaaaaa...bbbbbbb)",
		msg.Text)
	assert.Equal(t, []string{"alice_s"}, msg.ChatAuthors)
}

func TestNotification_Degraded(t *testing.T) {
	dir := accounts.NewDirectory([]accounts.Account{
		{GitHub: "alice", Slack: "alice_s", VSTS: "alice@x"},
	}, logger.Discard())

	ev := transition.Event{
		Current: provider.Build{
			SourceBranch: "refs/heads/main",
			Result:       provider.ResultFailed,
			Requester:    provider.Identity{DisplayName: "Microsoft.VisualStudio.Services.TFS"},
		},
		Degraded: true,
		Authors:  []string{"alice", "bob"},
	}

	msg := Notification("VS Code", ev, dir)
	assert.Contains(t, msg.Text, "Result: failed")
	assert.Contains(t, msg.Text, "Requester: Scheduled")
	assert.Contains(t, msg.Text, "Authors: @alice_s, bob")
	assert.Equal(t, []string{"alice_s"}, msg.ChatAuthors)
}

func TestNotification_NoAuthors(t *testing.T) {
	dir := accounts.NewDirectory(nil, logger.Discard())

	msg := Notification("VS Code", transition.Event{
		Current: provider.Build{Result: provider.ResultFailed, Requester: provider.Identity{UniqueName: "carol@x"}},
	}, dir)

	assert.Contains(t, msg.Text, "Requester: carol@x | Authors: None (rebuild)")
	assert.Empty(t, msg.ChatAuthors)
}
