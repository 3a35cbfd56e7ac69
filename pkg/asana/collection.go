package asana

import (
	"context"
	"encoding/json"
	"fmt"
)

// Page is one page of a list endpoint.
type Page[T any] struct {
	Data     []T
	NextPage *NextPage
}

// Collection is a pending list call. It shares Request's option and error
// semantics and adds limit/offset pagination.
type Collection[T any] struct {
	req *Request[[]T]
}

func newCollection[T any](c *Client, action string, params ...string) *Collection[T] {
	return &Collection[T]{req: newRequest[[]T](c, action, params...)}
}

// Option sets a named request option. See Request.Option.
func (c *Collection[T]) Option(name string, value any) *Collection[T] {
	c.req.Option(name, value)
	return c
}

// Query sets a plain query parameter such as a workspace or assignee filter.
func (c *Collection[T]) Query(name string, value any) *Collection[T] {
	c.req.Query(name, value)
	return c
}

// Limit sets the page size.
func (c *Collection[T]) Limit(n int) *Collection[T] {
	c.req.Query("limit", n)
	return c
}

// Offset resumes from a next_page offset token.
func (c *Collection[T]) Offset(token string) *Collection[T] {
	c.req.Query("offset", token)
	return c
}

// Path returns the expanded path relative to the base URL.
func (c *Collection[T]) Path() string { return c.req.Path() }

// Page fetches a single page.
func (c *Collection[T]) Page(ctx context.Context) (*Page[T], error) {
	return c.page(ctx, c.req)
}

// Execute fetches a single page and returns its items.
func (c *Collection[T]) Execute(ctx context.Context) ([]T, error) {
	p, err := c.Page(ctx)
	if err != nil {
		return nil, err
	}
	return p.Data, nil
}

// All follows next_page offsets until the collection is exhausted.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	req := c.req.clone()
	seen := map[string]bool{}
	var out []T
	for {
		p, err := c.page(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, p.Data...)

		if p.NextPage == nil || p.NextPage.Offset == "" {
			return out, nil
		}
		if seen[p.NextPage.Offset] {
			return nil, fmt.Errorf("%s: next_page offset %q repeated", req.path, p.NextPage.Offset)
		}
		seen[p.NextPage.Offset] = true
		req.Query("offset", p.NextPage.Offset)
	}
}

func (c *Collection[T]) page(ctx context.Context, req *Request[[]T]) (*Page[T], error) {
	env, err := req.send(ctx)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode %s %s data: %w", req.method, req.path, err)
	}
	return &Page[T]{Data: items, NextPage: env.NextPage}, nil
}

func (r *Request[T]) clone() *Request[T] {
	cp := *r
	cp.data = make(map[string]any, len(r.data))
	for k, v := range r.data {
		cp.data[k] = v
	}
	cp.query = make(map[string]OptionValue, len(r.query))
	for k, v := range r.query {
		cp.query[k] = v
	}
	cp.options = make(map[string]OptionValue, len(r.options))
	for k, v := range r.options {
		cp.options[k] = v
	}
	return &cp
}
