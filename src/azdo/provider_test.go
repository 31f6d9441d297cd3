package azdo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"build-chat/src/provider"
)

func TestProvider_FetchBuildAndHistory(t *testing.T) {
	var historyQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/Builds/2"):
			w.Write([]byte(`{
				"id": 2, "result": "partiallySucceeded",
				"sourceBranch": "refs/heads/release/1.90", "sourceVersion": "bbbbbbbbbb",
				"finishTime": "2024-05-01T10:00:00Z",
				"repository": {"id": "microsoft/vscode"},
				"requestedBy": {"displayName": "GitHub", "uniqueName": "github"},
				"definition": {"id": 7, "name": "VS Code"},
				"_links": {"web": {"href": "https://example.com/2"}}
			}`))
		case strings.HasSuffix(r.URL.Path, "/Builds"):
			historyQuery = r.URL.RawQuery
			w.Write([]byte(`{"count": 2, "value": [
				{"id": 1, "result": "succeeded", "startTime": "2024-05-01T08:00:00Z", "sourceVersion": "aaaaaaaaaa"},
				{"id": 2, "result": "partiallySucceeded", "startTime": "2024-05-01T09:00:00Z", "sourceVersion": "bbbbbbbbbb"}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	p := NewProvider(NewClient("", "", 5*time.Second))
	ref, err := provider.ParseURL(server.URL + "/org/proj/_apis/build/Builds/2")
	require.NoError(t, err)

	build, err := p.FetchBuild(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 2, build.ID)
	assert.Equal(t, provider.ResultPartiallySucceeded, build.Result)
	assert.Equal(t, "release/1.90", build.Branch())
	assert.Equal(t, "microsoft/vscode", build.Repository)
	assert.Equal(t, 7, build.DefinitionID)
	assert.Equal(t, "VS Code", build.DefinitionName)
	assert.Equal(t, "GitHub", build.Requester.DisplayName)
	assert.Equal(t, "https://example.com/2", build.WebURL)

	history, err := p.FetchHistory(context.Background(), ref, build)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].ID)
	assert.Equal(t, provider.ResultSucceeded, history[1].Result)
	assert.Contains(t, historyQuery, "definitions=7")
	assert.Contains(t, historyQuery, "branchName=refs%2Fheads%2Frelease%2F1.90")
	assert.Contains(t, historyQuery, "maxTime=2024-05-01T10%3A00%3A00Z")
}
