package asana

// WorkspacesService builds requests against the workspaces resource.
type WorkspacesService struct {
	client *Client
}

// FindAll lists the workspaces the caller belongs to.
func (s *WorkspacesService) FindAll() *Collection[Workspace] {
	return newCollection[Workspace](s.client, "workspaces.findAll")
}

// FindByID fetches a single workspace.
func (s *WorkspacesService) FindByID(workspace string) *Request[Workspace] {
	return newRequest[Workspace](s.client, "workspaces.findById", workspace)
}
