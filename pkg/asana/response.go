package asana

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope is the top-level JSON object wrapping every response.
type envelope struct {
	Data     json.RawMessage `json:"data"`
	Errors   []ErrorDetail   `json:"errors"`
	NextPage *NextPage       `json:"next_page"`
}

// NextPage points at the following page of a collection.
type NextPage struct {
	Offset string `json:"offset"`
	Path   string `json:"path"`
	URI    string `json:"uri"`
}

// parseResponse turns a status + body into a success envelope or a typed error.
func parseResponse(status int, body []byte) (envelope, error) {
	if status < 200 || status > 299 {
		var env envelope
		// Proxies may answer with HTML; the status alone still classifies it.
		_ = json.Unmarshal(body, &env)
		return envelope{}, newError(status, env.Errors)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, fmt.Errorf("decode response envelope: %w", err)
	}
	if len(bytes.TrimSpace(env.Data)) == 0 || env.Errors != nil {
		return envelope{}, ErrMalformedEnvelope
	}
	return env, nil
}
