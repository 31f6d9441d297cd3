package provider

import "strings"

// Result is the terminal outcome of a build, ordered by severity.
type Result int

const (
	ResultUnknown Result = iota
	ResultSucceeded
	ResultPartiallySucceeded
	ResultFailed
)

var resultNames = map[Result]string{
	ResultSucceeded:          "succeeded",
	ResultPartiallySucceeded: "partiallySucceeded",
	ResultFailed:             "failed",
}

// TerminalResults lists the results considered by the history query, best first.
var TerminalResults = []Result{ResultSucceeded, ResultPartiallySucceeded, ResultFailed}

// ParseResult maps a build server result name to a Result.
func ParseResult(s string) Result {
	for r, name := range resultNames {
		if name == s {
			return r
		}
	}
	return ResultUnknown
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "unknown"
}

// Rank returns the severity rank: succeeded=0, partiallySucceeded=1, failed=2.
// Unknown results rank -1.
func (r Result) Rank() int {
	switch r {
	case ResultSucceeded:
		return 0
	case ResultPartiallySucceeded:
		return 1
	case ResultFailed:
		return 2
	default:
		return -1
	}
}

// WorseThan reports whether r is strictly more severe than other.
func (r Result) WorseThan(other Result) bool {
	return r.Rank() > other.Rank()
}

// BuildRef identifies a build on the build server
type BuildRef struct {
	URL            string // Build detail resource
	BuildsAPIURL   string // Collection the build belongs to
	ReleaseProject bool   // Build runs in the release build system project
}

// Identity is a build server user
type Identity struct {
	DisplayName string
	UniqueName  string
}

// Build is one build server execution
type Build struct {
	ID             int
	DefinitionID   int
	DefinitionName string
	Repository     string // "owner/repo"
	SourceBranch   string // "refs/heads/main"
	SourceVersion  string
	// PreviousSourceVersion is the source revision of the preceding build in the
	// same window, empty for the oldest record.
	PreviousSourceVersion string
	Result                Result
	Requester             Identity
	WebURL                string
	QueueTime             string
	StartTime             string
	FinishTime            string
}

// Branch returns the source branch without the refs/heads/ prefix.
func (b Build) Branch() string {
	return strings.TrimPrefix(b.SourceBranch, "refs/heads/")
}
