// Package chat delivers results to Slack channels and direct messages.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"build-chat/src/contracts"
	"build-chat/src/sanitize"
)

// MembershipPageSize is the conversations.list page size.
const MembershipPageSize = 100

var membershipTypes = []string{"public_channel", "private_channel"}

// API is the subset of the Slack Web API used by the dispatcher.
type API interface {
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ API = (*slack.Client)(nil)

// Options selects the destinations.
type Options struct {
	LogChannel          string
	NotificationChannel string
	NotifyAuthors       bool
}

// Dispatcher posts results to Slack.
type Dispatcher struct {
	api  API
	opts Options
	log  *slog.Logger
}

// NewClient creates a Slack client. apiURL overrides the Web API endpoint when set.
func NewClient(token, apiURL string, timeout time.Duration) *slack.Client {
	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: timeout}),
	}
	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return slack.New(token, opts...)
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(api API, opts Options, log *slog.Logger) *Dispatcher {
	return &Dispatcher{api: api, opts: opts, log: log}
}

// ListMemberships pages through every channel visible to the caller and
// returns the ones the caller is a member of. Pages are fetched one after
// another since each cursor comes from the previous response.
func (d *Dispatcher) ListMemberships(ctx context.Context) ([]slack.Channel, error) {
	var members []slack.Channel
	cursor := ""
	for {
		channels, next, err := d.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Cursor: cursor,
			Limit:  MembershipPageSize,
			Types:  membershipTypes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list conversations: %w", err)
		}
		for _, ch := range channels {
			if ch.IsMember {
				members = append(members, ch)
			}
		}
		if next == "" {
			return members, nil
		}
		cursor = next
	}
}

// Dispatch sends the results. Log lines go to the log channel; each message
// goes to the log channel, the notification channel and, when enabled, to
// every author by direct message, in that order.
func (d *Dispatcher) Dispatch(ctx context.Context, results contracts.Results) error {
	if results.Empty() {
		return nil
	}

	memberships, err := d.ListMemberships(ctx)
	if err != nil {
		return err
	}

	logChannel := d.findChannel(memberships, d.opts.LogChannel, "log channel not found")
	if logChannel != "" {
		for _, line := range results.LogMessages {
			if err := d.post(ctx, logChannel, line); err != nil {
				return err
			}
		}
	}

	var users map[string]slack.User
	if d.opts.NotifyAuthors {
		users, err = d.usersByName(ctx)
		if err != nil {
			return err
		}
	}

	notificationChannel := d.findChannel(memberships, d.opts.NotificationChannel, "notification channel not found")

	for _, msg := range results.Messages {
		destinations := make([]string, 0, 2+len(msg.ChatAuthors))
		if logChannel != "" {
			destinations = append(destinations, logChannel)
		}
		if notificationChannel != "" {
			destinations = append(destinations, notificationChannel)
		}
		if d.opts.NotifyAuthors {
			for _, author := range msg.ChatAuthors {
				user, ok := users[author]
				if !ok {
					d.log.Warn("slack user not found", "user", sanitize.Redact(author))
					continue
				}
				ch, _, _, err := d.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
					Users: []string{user.ID},
				})
				if err != nil {
					return fmt.Errorf("failed to open conversation with %s: %w", user.ID, err)
				}
				destinations = append(destinations, ch.ID)
			}
		}

		for _, channel := range destinations {
			if err := d.post(ctx, channel, msg.Text); err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *Dispatcher) findChannel(memberships []slack.Channel, name, missing string) string {
	if name == "" {
		return ""
	}
	for _, ch := range memberships {
		if ch.Name == name {
			return ch.ID
		}
	}
	d.log.Warn(missing, "channel", sanitize.Redact(name))
	return ""
}

func (d *Dispatcher) usersByName(ctx context.Context) (map[string]slack.User, error) {
	users, err := d.api.GetUsersContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	byName := make(map[string]slack.User, len(users))
	for _, u := range users {
		byName[u.Name] = u
	}
	return byName, nil
}

func (d *Dispatcher) post(ctx context.Context, channel, text string) error {
	_, _, err := d.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionLinkNames(true),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", channel, err)
	}
	d.log.Debug("posted message", "channel", channel)
	return nil
}
