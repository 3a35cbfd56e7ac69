package export

import (
	"context"

	"github.com/NirGallner/asana-go/pkg/asana"
	"github.com/NirGallner/asana-go/pkg/publishers"
	"github.com/NirGallner/asana-go/pkg/sources"
)

// TaskFetcher lists the tasks of a source project.
type TaskFetcher interface {
	FetchTasks(ctx context.Context, src sources.Source) ([]asana.Task, error)
}

// EventPublisher publishes task events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which task versions were already exported.
type Deduper interface {
	SeenTask(version string) (bool, error)
	MarkTask(version string) error
}
