// Package asanatest provides an in-memory dispatcher for exercising the
// asana client without a network.
package asanatest

import (
	"context"
	"fmt"
	"sync"

	"github.com/NirGallner/asana-go/pkg/httpclient"
)

// Call records one dispatched request.
type Call struct {
	Method      string
	URL         string
	Headers     map[string]string
	RequestBody string
}

type response struct {
	status int
	body   []byte
}

func (r response) Body() []byte    { return r.body }
func (r response) StatusCode() int { return r.status }

// Dispatcher answers registered method + URL pairs with canned responses and
// records every call it receives.
type Dispatcher struct {
	mu        sync.Mutex
	responses map[string]response
	calls     []Call
}

var _ httpclient.Client = (*Dispatcher)(nil)

// New returns an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{responses: make(map[string]response)}
}

// RegisterResponse answers method + url (including its query string) with
// status and body. Registering the same pair again replaces the response.
func (d *Dispatcher) RegisterResponse(method, url string, status int, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.responses[key(method, url)] = response{status: status, body: []byte(body)}
}

// Do implements httpclient.Client. Unregistered requests fail with an error
// and are still recorded.
func (d *Dispatcher) Do(_ context.Context, method, url string, headers map[string]string, body []byte) (httpclient.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	hdrs := make(map[string]string, len(headers))
	for k, v := range headers {
		hdrs[k] = v
	}
	d.calls = append(d.calls, Call{
		Method:      method,
		URL:         url,
		Headers:     hdrs,
		RequestBody: string(body),
	})

	resp, ok := d.responses[key(method, url)]
	if !ok {
		return nil, fmt.Errorf("no response registered for %s %s", method, url)
	}
	return resp, nil
}

// Calls returns the recorded calls in dispatch order.
func (d *Dispatcher) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

// Reset forgets recorded calls but keeps registered responses.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

func key(method, url string) string { return method + " " + url }
