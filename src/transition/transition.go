// Package transition finds result changes between adjacent builds and
// attributes them to commit authors.
package transition

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"build-chat/src/provider"
)

const (
	MainBranch          = "refs/heads/main"
	ReleaseBranchPrefix = "refs/heads/release/"
	ExperimentalBranch  = "refs/heads/remote-hackathon"
)

// ExperimentalAuthors stands in for the compare result on the experimental branch.
var ExperimentalAuthors = []string{"TBD", "chrmarti"}

// Tracked reports whether builds of branch are reported at all.
func Tracked(branch string) bool {
	return branch == MainBranch ||
		strings.HasPrefix(branch, ReleaseBranchPrefix) ||
		branch == ExperimentalBranch
}

// Event is a result change between two adjacent builds.
type Event struct {
	Current  provider.Build
	Previous provider.Build

	// Degraded is set when Current's result is worse than Previous's.
	Degraded bool

	// Filled by Resolver.
	Authors    []string
	ChangesURL string
}

// Window locates build id in history (newest first) and returns it together
// with its predecessor, if any. Each record's PreviousSourceVersion is set
// to the source version of the record after it. ok is false when id is not
// in history.
func Window(history []provider.Build, id int) (window []provider.Build, ok bool) {
	index := -1
	for i := range history {
		if history[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false
	}

	end := min(index+2, len(history))
	window = make([]provider.Build, end-index)
	copy(window, history[index:end])
	for i := range window {
		window[i].PreviousSourceVersion = ""
		if i < len(window)-1 {
			window[i].PreviousSourceVersion = window[i+1].SourceVersion
		}
	}
	return window, true
}

// Detect returns one event per adjacent pair in window whose results differ.
func Detect(window []provider.Build) []Event {
	var events []Event
	for i := 0; i < len(window)-1; i++ {
		newer, older := window[i], window[i+1]
		if newer.Result == older.Result {
			continue
		}
		events = append(events, Event{
			Current:  newer,
			Previous: older,
			Degraded: newer.Result.WorseThan(older.Result),
		})
	}
	return events
}

// Resolver attributes events to the authors of the commits between the two builds.
type Resolver struct {
	source provider.SourceControl
}

// NewResolver creates a resolver backed by source.
func NewResolver(source provider.SourceControl) *Resolver {
	return &Resolver{source: source}
}

// Resolve fills Authors and ChangesURL of every event with a known previous
// revision. Events are resolved concurrently; the first failure cancels the
// rest and is returned.
func (r *Resolver) Resolve(ctx context.Context, events []Event) error {
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	for i := range events {
		ev := &events[i]
		base, head := ev.Current.PreviousSourceVersion, ev.Current.SourceVersion
		if base == "" {
			continue
		}

		p.Go(func(ctx context.Context) error {
			authors, err := r.authors(ctx, ev.Current, base, head)
			if err != nil {
				return err
			}
			ev.Authors = authors
			ev.ChangesURL = r.source.CompareURL(ev.Current.Repository, base, head)
			return nil
		})
	}

	return p.Wait()
}

func (r *Resolver) authors(ctx context.Context, build provider.Build, base, head string) ([]string, error) {
	if build.SourceBranch == ExperimentalBranch {
		authors := make([]string, len(ExperimentalAuthors))
		copy(authors, ExperimentalAuthors)
		return authors, nil
	}
	return r.source.CompareAuthors(ctx, build.Repository, base, head)
}
