package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrInvalidURL = errors.New("invalid build URL")
)

// releaseProjectPrefixes are the URL prefixes of the release build system project.
var releaseProjectPrefixes = []string{
	"https://monacotools.visualstudio.com/",
	"https://dev.azure.com/monacotools/",
}

// BuildServer fetches build records
type BuildServer interface {
	// FetchBuild retrieves the build the ref points at
	FetchBuild(ctx context.Context, ref *BuildRef) (*Build, error)

	// FetchHistory retrieves the most recent terminal builds of the same
	// definition and branch, newest first
	FetchHistory(ctx context.Context, ref *BuildRef, build *Build) ([]Build, error)
}

// SourceControl resolves commit authorship
type SourceControl interface {
	// CompareAuthors returns the logins of the authors and committers of the
	// commits between base and head
	CompareAuthors(ctx context.Context, repository, base, head string) ([]string, error)

	// CompareURL returns the web page comparing base and head
	CompareURL(repository, base, head string) string
}

// ParseURL validates a build detail URL and derives its build reference
func ParseURL(buildURL string) (*BuildRef, error) {
	u, err := url.Parse(buildURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, buildURL)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, buildURL)
	}

	last := strings.LastIndex(buildURL, "/")
	if last <= len(u.Scheme)+len("://")+len(u.Host) || last == len(buildURL)-1 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, buildURL)
	}

	ref := &BuildRef{
		URL:          buildURL,
		BuildsAPIURL: buildURL[:last],
	}
	for _, prefix := range releaseProjectPrefixes {
		if strings.HasPrefix(buildURL, prefix) {
			ref.ReleaseProject = true
			break
		}
	}
	return ref, nil
}
