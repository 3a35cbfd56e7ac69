package asana

// ProjectsService builds requests against the projects resource.
type ProjectsService struct {
	client *Client
}

// FindByID fetches a single project.
func (s *ProjectsService) FindByID(project string) *Request[Project] {
	return newRequest[Project](s.client, "projects.findById", project)
}

// FindByWorkspace lists the projects in a workspace.
func (s *ProjectsService) FindByWorkspace(workspace string) *Collection[Project] {
	return newCollection[Project](s.client, "projects.findByWorkspace", workspace)
}

// Create starts a project; set "workspace" and "name" with Data.
func (s *ProjectsService) Create() *Request[Project] {
	return newRequest[Project](s.client, "projects.create")
}

// Update changes only the fields set with Data.
func (s *ProjectsService) Update(project string) *Request[Project] {
	return newRequest[Project](s.client, "projects.update", project)
}

// Delete removes the project.
func (s *ProjectsService) Delete(project string) *Request[Empty] {
	return newRequest[Empty](s.client, "projects.delete", project)
}
