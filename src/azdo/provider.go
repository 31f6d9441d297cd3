package azdo

import (
	"context"

	"build-chat/src/provider"
)

var _ provider.BuildServer = (*Provider)(nil)

// Provider implements provider.BuildServer for Azure DevOps
type Provider struct {
	client *Client
}

// NewProvider creates an Azure DevOps provider
func NewProvider(client *Client) *Provider {
	return &Provider{client: client}
}

// FetchBuild retrieves the build the ref points at
func (p *Provider) FetchBuild(ctx context.Context, ref *provider.BuildRef) (*provider.Build, error) {
	b, err := p.client.GetBuild(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	build := toBuild(*b)
	return &build, nil
}

// FetchHistory retrieves up to HistorySize terminal builds of the same
// definition and branch that finished no later than build
func (p *Provider) FetchHistory(ctx context.Context, ref *provider.BuildRef, build *provider.Build) ([]provider.Build, error) {
	list, err := p.client.ListBuilds(ctx, ref.BuildsAPIURL, HistoryQuery{
		Top:          HistorySize,
		MaxTime:      build.FinishTime,
		DefinitionID: build.DefinitionID,
		BranchName:   build.SourceBranch,
		Results:      provider.TerminalResults,
	})
	if err != nil {
		return nil, err
	}

	builds := make([]provider.Build, 0, len(list))
	for _, b := range list {
		builds = append(builds, toBuild(b))
	}
	return builds, nil
}

func toBuild(b Build) provider.Build {
	return provider.Build{
		ID:             b.ID,
		DefinitionID:   b.Definition.ID,
		DefinitionName: b.Definition.Name,
		Repository:     b.Repository.ID,
		SourceBranch:   b.SourceBranch,
		SourceVersion:  b.SourceVersion,
		Result:         provider.ParseResult(b.Result),
		Requester: provider.Identity{
			DisplayName: b.RequestedBy.DisplayName,
			UniqueName:  b.RequestedBy.UniqueName,
		},
		WebURL:     b.Links.Web.Href,
		QueueTime:  b.QueueTime,
		StartTime:  b.StartTime,
		FinishTime: b.FinishTime,
	}
}
