package asana

// TasksService builds requests against the tasks resource.
type TasksService struct {
	client *Client
}

// Create starts a task; set "workspace" or "projects" with Data.
func (s *TasksService) Create() *Request[Task] {
	return newRequest[Task](s.client, "tasks.create")
}

// CreateInWorkspace creates a task directly in the given workspace.
func (s *TasksService) CreateInWorkspace(workspace string) *Request[Task] {
	return newRequest[Task](s.client, "tasks.createInWorkspace", workspace)
}

// FindByID fetches a single task.
func (s *TasksService) FindByID(task string) *Request[Task] {
	return newRequest[Task](s.client, "tasks.findById", task)
}

// Update changes only the fields set with Data.
func (s *TasksService) Update(task string) *Request[Task] {
	return newRequest[Task](s.client, "tasks.update", task)
}

// Delete removes the task.
func (s *TasksService) Delete(task string) *Request[Empty] {
	return newRequest[Empty](s.client, "tasks.delete", task)
}

// FindByProject lists the tasks in a project.
func (s *TasksService) FindByProject(project string) *Collection[Task] {
	return newCollection[Task](s.client, "tasks.findByProject", project)
}

// FindAll requires an assignee + workspace or a project filter via Query.
func (s *TasksService) FindAll() *Collection[Task] {
	return newCollection[Task](s.client, "tasks.findAll")
}

// Subtasks lists the direct children of a task.
func (s *TasksService) Subtasks(task string) *Collection[Task] {
	return newCollection[Task](s.client, "tasks.subtasks", task)
}

// AddProject links the task to the project given with Data("project", gid).
func (s *TasksService) AddProject(task string) *Request[Empty] {
	return newRequest[Empty](s.client, "tasks.addProject", task)
}
