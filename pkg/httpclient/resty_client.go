package httpclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient is the resty-backed Client used in production.
type RestyClient struct {
	client *resty.Client
}

var _ Client = (*RestyClient)(nil)

// NewRestyClient returns a Client whose requests time out after timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return WrapResty(resty.New().SetTimeout(timeout))
}

// WrapResty uses an already configured resty client (proxies, TLS, transport
// middleware) as the transport.
func WrapResty(c *resty.Client) *RestyClient {
	if c == nil {
		c = resty.New()
	}
	return &RestyClient{client: c}
}

func (r *RestyClient) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) (Response, error) {
	req := r.client.R().SetContext(ctx).SetHeaders(headers)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", method, err)
	}
	return buffered{status: resp.StatusCode(), body: resp.Body()}, nil
}

type buffered struct {
	status int
	body   []byte
}

func (b buffered) StatusCode() int { return b.status }
func (b buffered) Body() []byte    { return b.body }
