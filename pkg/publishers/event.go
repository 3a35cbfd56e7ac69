package publishers

import (
	"time"

	"github.com/NirGallner/asana-go/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	SourceID    string            `json:"source_id"`
	SourceName  string            `json:"source_name"`
	Task        domain.TaskRecord `json:"task"`
	CollectedAt time.Time         `json:"collected_at"`
}

// NewEvent constructs an Event for the given source + task.
func NewEvent(sourceID, sourceName string, task domain.TaskRecord) Event {
	return Event{
		SourceID:    sourceID,
		SourceName:  sourceName,
		Task:        task,
		CollectedAt: time.Now().UTC(),
	}
}
