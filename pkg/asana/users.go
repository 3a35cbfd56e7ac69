package asana

// UsersService builds requests against the users resource.
type UsersService struct {
	client *Client
}

// Me returns the user owning the access token.
func (s *UsersService) Me() *Request[User] {
	return newRequest[User](s.client, "users.me")
}

// FindByID fetches one user by gid, or "me".
func (s *UsersService) FindByID(user string) *Request[User] {
	return newRequest[User](s.client, "users.findById", user)
}

// FindAll lists users visible to the caller; filter with Query("workspace", gid).
func (s *UsersService) FindAll() *Collection[User] {
	return newCollection[User](s.client, "users.findAll")
}

// FindByWorkspace lists the users in a workspace.
func (s *UsersService) FindByWorkspace(workspace string) *Collection[User] {
	return newCollection[User](s.client, "users.findByWorkspace", workspace)
}
