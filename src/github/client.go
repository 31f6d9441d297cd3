// Package github resolves commit authorship through the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"build-chat/src/provider"
)

const (
	// DefaultAPIURL is the public GitHub API.
	DefaultAPIURL = "https://api.github.com"
	// DefaultWebURL is the public GitHub web UI.
	DefaultWebURL = "https://github.com"

	// WebFlowLogin commits merges made through the GitHub web UI.
	WebFlowLogin = "web-flow"

	shortSHALength = 7
)

var (
	ErrInvalidRepository = errors.New("invalid repository")
)

var _ provider.SourceControl = (*Client)(nil)

// Client is a GitHub API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	webURL     string
}

// NewClient creates a new GitHub client. An empty token means anonymous access.
func NewClient(token string, timeout time.Duration) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultAPIURL,
		webURL:  DefaultWebURL,
	}
}

// WithBaseURL points the client at another API endpoint, e.g. GitHub Enterprise
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// SplitRepository splits "owner/repo"
func SplitRepository(repository string) (owner, repo string, err error) {
	parts := strings.Split(repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepository, repository)
	}
	return parts[0], parts[1], nil
}

// CompareAuthors fetches the comparison between base and head and returns the
// distinct author logins followed by committer logins, without web-flow.
// Commits whose author has no GitHub account carry no login and are skipped.
func (c *Client) CompareAuthors(ctx context.Context, repository, base, head string) ([]string, error) {
	owner, repo, err := SplitRepository(repository)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/repos/%s/%s/compare/%s...%s", c.baseURL, owner, repo, base, head)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: GitHub API error %d", provider.ErrAuthFailed, resp.StatusCode)
	default:
		return nil, fmt.Errorf("GitHub API error %d: %s", resp.StatusCode, string(body))
	}

	if !gjson.ValidBytes(body) {
		return nil, errors.New("GitHub API returned invalid JSON")
	}

	return commitLogins(body), nil
}

// CompareURL returns the web comparison of the abbreviated revisions
func (c *Client) CompareURL(repository, base, head string) string {
	return fmt.Sprintf("%s/%s/compare/%s...%s", c.webURL, repository, shortSHA(base), shortSHA(head))
}

func commitLogins(body []byte) []string {
	seen := make(map[string]bool)
	var logins []string

	add := func(result gjson.Result) {
		for _, login := range result.Array() {
			name := login.String()
			if name == "" || name == WebFlowLogin || seen[name] {
				continue
			}
			seen[name] = true
			logins = append(logins, name)
		}
	}

	add(gjson.GetBytes(body, "commits.#.author.login"))
	add(gjson.GetBytes(body, "commits.#.committer.login"))

	return logins
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}
	return sha
}
