// Package compose renders builds and transitions as chat text.
package compose

import (
	"fmt"
	"sort"
	"strings"

	"build-chat/src/accounts"
	"build-chat/src/contracts"
	"build-chat/src/provider"
	"build-chat/src/transition"
)

const (
	flagshipDefinition = "VS Code"
	noAuthors          = "None (rebuild)"
)

// PipelineName returns the display name of a build definition.
func PipelineName(definitionName string, releaseProject bool) string {
	if definitionName != flagshipDefinition {
		return definitionName
	}
	if releaseProject {
		return flagshipDefinition + " Release Build"
	}
	return flagshipDefinition + " Continuous Build"
}

// LogLine renders the log channel line for a build.
func LogLine(b provider.Build) string {
	return fmt.Sprintf("Id: %d | Branch: %s | Result: %s | Queue: %s | Start: %s | Finish: %s",
		b.ID, b.Branch(), b.Result, b.QueueTime, b.StartTime, b.FinishTime)
}

// Notification renders a transition. Handles are @-prefixed when the
// transition is degraded so the people involved are pinged.
func Notification(name string, ev transition.Event, dir *accounts.Directory) contracts.Message {
	build := ev.Current

	authors := dir.Authors(ev.Authors, ev.Degraded)
	sort.Strings(authors)
	authorText := strings.Join(authors, ", ")
	if authorText == "" {
		authorText = noAuthors
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Result: %s | Branch: %s | Requester: %s | Authors: %s",
		build.Result, build.Branch(), dir.Requester(build.Requester, ev.Degraded), authorText)
	b.WriteString("\n")
	fmt.Fprintf(&b, "[Build](%s) | [Changes](%s)", build.WebURL, ev.ChangesURL)

	return contracts.Message{
		Text:        b.String(),
		ChatAuthors: dir.ChatHandles(ev.Authors),
	}
}
