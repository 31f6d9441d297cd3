// Package azdo provides a client for the Azure DevOps build REST API.
package azdo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"build-chat/src/provider"
)

const (
	// APIVersion is the build API version used for history queries.
	APIVersion = "5.0-preview.4"

	// HistorySize bounds the number of builds fetched for a history window.
	HistorySize = 10
)

// Client is an Azure DevOps build API client.
type Client struct {
	user       string
	pass       string
	httpClient *http.Client
}

// Build represents an Azure DevOps build resource.
type Build struct {
	Links struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"_links"`
	ID            int    `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	Result        string `json:"result"`
	QueueTime     string `json:"queueTime"`
	StartTime     string `json:"startTime"`
	FinishTime    string `json:"finishTime"`
	SourceBranch  string `json:"sourceBranch"`
	SourceVersion string `json:"sourceVersion"`
	Repository    struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"repository"`
	RequestedBy struct {
		DisplayName string `json:"displayName"`
		UniqueName  string `json:"uniqueName"`
	} `json:"requestedBy"`
	Definition struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"definition"`
}

// BuildList is the API response for listing builds.
type BuildList struct {
	Count int     `json:"count"`
	Value []Build `json:"value"`
}

// HistoryQuery selects the builds preceding a build.
type HistoryQuery struct {
	Top          int
	MaxTime      string
	DefinitionID int
	BranchName   string
	Results      []provider.Result
}

// NewClient creates a new Azure DevOps client. Basic auth is used only when
// both user and pass are non-empty.
func NewClient(user, pass string, timeout time.Duration) *Client {
	if user == "" || pass == "" {
		user, pass = "", ""
	}
	return &Client{
		user: user,
		pass: pass,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetBuild fetches a single build resource by its fully-qualified URL.
func (c *Client) GetBuild(ctx context.Context, buildURL string) (*Build, error) {
	var build Build
	if err := c.getJSON(ctx, buildURL, &build); err != nil {
		return nil, err
	}
	return &build, nil
}

// ListBuilds fetches the builds matching q from the builds collection and
// returns them ordered by start time, newest first.
func (c *Client) ListBuilds(ctx context.Context, buildsURL string, q HistoryQuery) ([]Build, error) {
	var list BuildList
	if err := c.getJSON(ctx, HistoryURL(buildsURL, q), &list); err != nil {
		return nil, err
	}

	builds := list.Value
	// Timestamps are ISO 8601 so they order lexically.
	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].StartTime > builds[j].StartTime
	})
	return builds, nil
}

// HistoryURL builds the list query for q.
func HistoryURL(buildsURL string, q HistoryQuery) string {
	results := make([]string, 0, len(q.Results))
	for _, r := range q.Results {
		results = append(results, r.String())
	}

	var b strings.Builder
	b.WriteString(buildsURL)
	b.WriteString("?$top=")
	b.WriteString(strconv.Itoa(q.Top))
	b.WriteString("&maxTime=")
	b.WriteString(url.QueryEscape(q.MaxTime))
	b.WriteString("&definitions=")
	b.WriteString(strconv.Itoa(q.DefinitionID))
	b.WriteString("&branchName=")
	b.WriteString(url.QueryEscape(q.BranchName))
	b.WriteString("&resultFilter=")
	b.WriteString(strings.Join(results, ","))
	b.WriteString("&api-version=")
	b.WriteString(APIVersion)
	return b.String()
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.user != "" {
		req.SetBasicAuth(c.user, c.pass)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: build API returned status %d", provider.ErrAuthFailed, resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", provider.ErrBuildNotFound, rawURL)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
