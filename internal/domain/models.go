package domain

import "time"

// Domain contains core models and interfaces.

// TaskRecord is the flattened task shape handed to publishers.
type TaskRecord struct {
	GID          string    `json:"gid"`
	Name         string    `json:"name"`
	Notes        string    `json:"notes"`
	Completed    bool      `json:"completed"`
	Assignee     string    `json:"assignee,omitempty"`
	ProjectGID   string    `json:"project_gid"`
	DueOn        string    `json:"due_on,omitempty"`
	PermalinkURL string    `json:"permalink_url,omitempty"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Version identifies a task revision; a task is exported again once its
// modified_at moves.
func (t TaskRecord) Version() string {
	if t.ModifiedAt.IsZero() {
		return t.GID
	}
	return t.GID + "@" + t.ModifiedAt.UTC().Format(time.RFC3339Nano)
}
