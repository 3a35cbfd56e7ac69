package asana

import "time"

// Compact is the gid + name reference the API embeds for related objects.
type Compact struct {
	GID          string `json:"gid"`
	Name         string `json:"name"`
	ResourceType string `json:"resource_type,omitempty"`
}

// Empty decodes the {} payload returned by deletes and relationship edits.
type Empty struct{}

// User is an Asana account.
type User struct {
	GID        string    `json:"gid"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Workspaces []Compact `json:"workspaces"`
}

// Task is a unit of work; Projects and Parent are compact references.
type Task struct {
	GID          string     `json:"gid"`
	Name         string     `json:"name"`
	Notes        string     `json:"notes"`
	HTMLNotes    string     `json:"html_notes"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	DueOn        string     `json:"due_on"`
	Assignee     *Compact   `json:"assignee"`
	Workspace    *Compact   `json:"workspace"`
	Parent       *Compact   `json:"parent"`
	Projects     []Compact  `json:"projects"`
	Tags         []Compact  `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	ModifiedAt   time.Time  `json:"modified_at"`
	PermalinkURL string     `json:"permalink_url"`
}

// Project groups tasks inside a workspace.
type Project struct {
	GID        string    `json:"gid"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes"`
	Archived   bool      `json:"archived"`
	Color      string    `json:"color"`
	Workspace  *Compact  `json:"workspace"`
	Team       *Compact  `json:"team"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Workspace is the top-level container a user belongs to.
type Workspace struct {
	GID            string   `json:"gid"`
	Name           string   `json:"name"`
	IsOrganization bool     `json:"is_organization"`
	EmailDomains   []string `json:"email_domains"`
}
