// Package asana is a client binding for the Asana REST API.
//
// Calls are built through resource facades and sent with Execute:
//
//	client, err := asana.NewClient(asana.WithAccessToken(token))
//	if err != nil {
//	    return err
//	}
//	me, err := client.Users.Me().Option("fields", []string{"name", "email"}).Execute(ctx)
//
// Failed calls return *Error; match them with errors.Is against the kind
// sentinels (ErrNotFound, ErrForbidden, ...) or switch on Error.Kind.
package asana

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NirGallner/asana-go/pkg/httpclient"
)

const (
	// DefaultBaseURL is the public API root.
	DefaultBaseURL = "https://app.asana.com/api/1.0"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "asana-go"
)

// Dispatcher sends a request and returns the buffered response.
type Dispatcher = httpclient.Client

// Client holds read-only connection settings and exposes the resource facades.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	dispatcher Dispatcher
	log        Logger

	Users      *UsersService
	Tasks      *TasksService
	Projects   *ProjectsService
	Workspaces *WorkspacesService
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithBaseURL overrides the API root, e.g. for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL == "" {
			return errors.New("base url cannot be empty")
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithAccessToken authenticates requests with a personal access token.
func WithAccessToken(token string) ClientOption {
	return func(c *Client) error {
		token = strings.TrimSpace(token)
		if token == "" {
			return errors.New("access token cannot be empty")
		}
		c.token = token
		return nil
	}
}

// WithDispatcher replaces the HTTP transport.
func WithDispatcher(d Dispatcher) ClientOption {
	return func(c *Client) error {
		if d == nil {
			return errors.New("dispatcher cannot be nil")
		}
		c.dispatcher = d
		return nil
	}
}

// WithLogger attaches a structured logger.
func WithLogger(log Logger) ClientOption {
	return func(c *Client) error {
		if log != nil {
			c.log = log
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// NewClient builds a client. Without WithDispatcher it uses a resty transport
// with a 30s timeout.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		log:       noopLogger{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("configure asana client: %w", err)
		}
	}
	if c.dispatcher == nil {
		c.dispatcher = httpclient.NewRestyClient(defaultTimeout)
	}

	c.Users = &UsersService{client: c}
	c.Tasks = &TasksService{client: c}
	c.Projects = &ProjectsService{client: c}
	c.Workspaces = &WorkspacesService{client: c}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string, params map[string]string) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if q := encodeQuery(params); q != "" {
		u += "?" + q
	}
	return u
}

func (c *Client) headers(withBody bool) map[string]string {
	h := map[string]string{
		"Accept":     "application/json",
		"User-Agent": c.userAgent,
	}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	if withBody {
		h["Content-Type"] = "application/json"
	}
	return h
}

func (c *Client) dispatch(ctx context.Context, method, url string, body []byte) (int, []byte, error) {
	start := time.Now()
	resp, err := c.dispatcher.Do(ctx, method, url, c.headers(body != nil), body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	c.log.DebugObj("asana request dispatched", "asana_request", map[string]any{
		"method":     method,
		"url":        url,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return resp.StatusCode(), resp.Body(), nil
}
