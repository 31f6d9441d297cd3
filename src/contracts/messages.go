// Package contracts defines the values passed between the pipeline stages.
package contracts

// Message is a rendered transition notification.
type Message struct {
	// Chat markdown body.
	Text string `json:"text"`
	// Un-prefixed chat handles of the mapped authors, used for direct messages.
	ChatAuthors []string `json:"chat_authors"`
}

// Results is the output of one build-complete run.
type Results struct {
	// One line per top build, for the log channel.
	LogMessages []string `json:"log_messages"`
	// One notification per transition, newest first.
	Messages []Message `json:"messages"`
}

// Empty reports whether there is nothing to send.
func (r *Results) Empty() bool {
	return len(r.LogMessages) == 0 && len(r.Messages) == 0
}
