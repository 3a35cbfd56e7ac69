package httpclient

import "context"

// Response is what a transport hands back once the body has been read in full.
type Response interface {
	StatusCode() int
	Body() []byte
}

// Client sends one HTTP request. Non-2xx statuses come back as a Response;
// only transport failures are errors. A nil body sends no payload.
type Client interface {
	Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error)
}
