package export

import (
	"context"
	"fmt"
	"time"

	"github.com/NirGallner/asana-go/pkg/asana"
	"github.com/NirGallner/asana-go/pkg/sources"
)

// AsanaFetcher pages through a project's tasks with the Asana client.
type AsanaFetcher struct {
	client *asana.Client
}

// NewAsanaFetcher wraps an Asana client.
func NewAsanaFetcher(client *asana.Client) *AsanaFetcher {
	return &AsanaFetcher{client: client}
}

// FetchTasks follows next_page offsets, sleeping RequestDelay between pages.
// Without IncludeCompleted only incomplete tasks are requested.
func (f *AsanaFetcher) FetchTasks(ctx context.Context, src sources.Source) ([]asana.Task, error) {
	if f == nil || f.client == nil {
		return nil, fmt.Errorf("asana fetcher is not initialized")
	}

	delay := src.RequestDelay()
	var (
		out    []asana.Task
		offset string
		seen   = map[string]bool{}
	)
	for {
		coll := f.client.Tasks.FindByProject(src.ProjectGID).
			Option("fields", src.Fields).
			Limit(src.PageSize)
		if !src.IncludeCompleted {
			coll.Query("completed_since", "now")
		}
		if offset != "" {
			coll.Offset(offset)
		}

		page, err := coll.Page(ctx)
		if err != nil {
			return out, fmt.Errorf("list tasks for project %s: %w", src.ProjectGID, err)
		}
		out = append(out, page.Data...)

		if page.NextPage == nil || page.NextPage.Offset == "" {
			return out, nil
		}
		offset = page.NextPage.Offset
		if seen[offset] {
			return out, fmt.Errorf("list tasks for project %s: repeated page offset %q", src.ProjectGID, offset)
		}
		seen[offset] = true

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return out, ctx.Err()
			case <-timer.C:
			}
		}
	}
}
