package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Request is a pending API call whose data payload decodes into T.
// A Request is not safe for concurrent mutation.
type Request[T any] struct {
	client  *Client
	method  string
	path    string
	data    map[string]any
	query   map[string]OptionValue
	options map[string]OptionValue
	err     error
}

func newRequest[T any](c *Client, action string, params ...string) *Request[T] {
	method, path, err := lookupRoute(action, params...)
	return &Request[T]{
		client:  c,
		method:  method,
		path:    path,
		data:    map[string]any{},
		query:   map[string]OptionValue{},
		options: map[string]OptionValue{},
		err:     err,
	}
}

// Option sets a named request option such as pretty, fields or expand.
// Reads send it as opt_<name>; writes nest it under "options".
func (r *Request[T]) Option(name string, value any) *Request[T] {
	r.options[name] = ValueOf(value)
	return r
}

// Data sets a body field. Reads send data fields as plain query parameters,
// and a name also set through Query fails the request.
func (r *Request[T]) Data(field string, value any) *Request[T] {
	r.data[field] = value
	return r
}

// Query sets a plain (unprefixed) query parameter. Calling it twice with the
// same name keeps the last value.
func (r *Request[T]) Query(name string, value any) *Request[T] {
	r.query[name] = ValueOf(value)
	return r
}

// Method returns the HTTP verb.
func (r *Request[T]) Method() string { return r.method }

// Path returns the expanded path relative to the base URL.
func (r *Request[T]) Path() string { return r.path }

// Execute dispatches the request and decodes the data payload.
func (r *Request[T]) Execute(ctx context.Context) (*T, error) {
	env, err := r.send(ctx)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode %s %s data: %w", r.method, r.path, err)
	}
	return &out, nil
}

func (r *Request[T]) send(ctx context.Context) (envelope, error) {
	if r.err != nil {
		return envelope{}, r.err
	}
	if r.client == nil {
		return envelope{}, fmt.Errorf("request %s %s has no client", r.method, r.path)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target, body, err := r.encode()
	if err != nil {
		return envelope{}, err
	}

	status, raw, err := r.client.dispatch(ctx, r.method, target, body)
	if err != nil {
		return envelope{}, err
	}

	env, err := parseResponse(status, raw)
	if err != nil {
		if apiErr, ok := AsError(err); ok {
			r.client.log.WarnObj("asana request failed", "asana_error", map[string]any{
				"method":  r.method,
				"path":    r.path,
				"status":  apiErr.StatusCode,
				"kind":    apiErr.Kind.String(),
				"message": apiErr.Message,
				"phrase":  apiErr.Phrase,
			})
			return envelope{}, err
		}
		return envelope{}, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	return env, nil
}

// encode builds the absolute URL and, for writes, the JSON body. On reads,
// Data fields and Query params share the unprefixed namespace; setting the
// same name through both is an error. Empty lists are left out of the URL.
func (r *Request[T]) encode() (string, []byte, error) {
	params := make(map[string]string, len(r.query)+len(r.data)+len(r.options))
	add := func(name string, v OptionValue) error {
		if v.isEmptyList() {
			return nil
		}
		if _, dup := params[name]; dup {
			return fmt.Errorf("%s %s: query parameter %q set more than once", r.method, r.path, name)
		}
		params[name] = v.QueryString()
		return nil
	}

	for name, v := range r.query {
		if err := add(name, v); err != nil {
			return "", nil, err
		}
	}

	var body []byte
	if hasBody(r.method) {
		payload := requestBody{Data: r.data}
		if len(r.options) > 0 {
			payload.Options = r.options
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", nil, fmt.Errorf("encode %s %s body: %w", r.method, r.path, err)
		}
		body = raw
	} else {
		for field, v := range r.data {
			if err := add(field, ValueOf(v)); err != nil {
				return "", nil, err
			}
		}
		for name, v := range r.options {
			if err := add("opt_"+name, v); err != nil {
				return "", nil, err
			}
		}
	}

	return r.client.url(r.path, params), body, nil
}

type requestBody struct {
	Data    map[string]any         `json:"data"`
	Options map[string]OptionValue `json:"options,omitempty"`
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// encodeQuery joins already-escaped values in key order.
func encodeQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+params[k])
	}
	return strings.Join(parts, "&")
}
