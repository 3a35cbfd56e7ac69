package asana

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// route is a verb plus a path template such as "tasks/{task}".
type route struct {
	method   string
	template string
}

// routes is the dispatch table behind the resource facades.
var routes = map[string]route{
	"users.me":              {http.MethodGet, "users/me"},
	"users.findById":        {http.MethodGet, "users/{user}"},
	"users.findAll":         {http.MethodGet, "users"},
	"users.findByWorkspace": {http.MethodGet, "workspaces/{workspace}/users"},

	"tasks.create":            {http.MethodPost, "tasks"},
	"tasks.createInWorkspace": {http.MethodPost, "workspaces/{workspace}/tasks"},
	"tasks.findById":          {http.MethodGet, "tasks/{task}"},
	"tasks.update":            {http.MethodPut, "tasks/{task}"},
	"tasks.delete":            {http.MethodDelete, "tasks/{task}"},
	"tasks.findByProject":     {http.MethodGet, "projects/{project}/tasks"},
	"tasks.findAll":           {http.MethodGet, "tasks"},
	"tasks.subtasks":          {http.MethodGet, "tasks/{task}/subtasks"},
	"tasks.addProject":        {http.MethodPost, "tasks/{task}/addProject"},

	"projects.findById":        {http.MethodGet, "projects/{project}"},
	"projects.findByWorkspace": {http.MethodGet, "workspaces/{workspace}/projects"},
	"projects.create":          {http.MethodPost, "projects"},
	"projects.update":          {http.MethodPut, "projects/{project}"},
	"projects.delete":          {http.MethodDelete, "projects/{project}"},

	"workspaces.findAll":  {http.MethodGet, "workspaces"},
	"workspaces.findById": {http.MethodGet, "workspaces/{workspace}"},
}

// lookupRoute resolves an action name and fills its template with params in
// order of appearance.
func lookupRoute(action string, params ...string) (string, string, error) {
	r, ok := routes[action]
	if !ok {
		return "", "", fmt.Errorf("unknown action %q", action)
	}
	path, err := r.expand(params...)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", action, err)
	}
	return r.method, path, nil
}

// expand substitutes each {name} segment with the next param, path-escaped.
func (r route) expand(params ...string) (string, error) {
	var b strings.Builder
	rest := r.template
	next := 0
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return "", fmt.Errorf("unterminated parameter in template %q", r.template)
		}
		name := rest[open+1 : open+closing]
		if next >= len(params) || strings.TrimSpace(params[next]) == "" {
			return "", fmt.Errorf("missing path parameter %q", name)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(strings.TrimSpace(params[next])))
		next++
		rest = rest[open+closing+1:]
	}
	if next != len(params) {
		return "", fmt.Errorf("template %q takes %d path parameters, got %d", r.template, next, len(params))
	}
	return b.String(), nil
}
