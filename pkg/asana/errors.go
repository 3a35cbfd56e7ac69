package asana

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed API call by HTTP status.
type ErrorKind int

const (
	// KindUnexpected covers non-2xx statuses without a dedicated kind.
	KindUnexpected ErrorKind = iota
	KindInvalidRequest
	KindNoAuthorization
	KindForbidden
	KindNotFound
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindNoAuthorization:
		return "no authorization"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server error"
	default:
		return "unexpected status"
	}
}

// KindForStatus maps an HTTP status code to its error kind. Callers should
// only ask about non-2xx statuses.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindInvalidRequest
	case status == http.StatusUnauthorized:
		return KindNoAuthorization
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindUnexpected
	}
}

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrInvalidRequest  error = kindSentinel(KindInvalidRequest)
	ErrNoAuthorization error = kindSentinel(KindNoAuthorization)
	ErrForbidden       error = kindSentinel(KindForbidden)
	ErrNotFound        error = kindSentinel(KindNotFound)
	ErrServer          error = kindSentinel(KindServer)
	ErrUnexpected      error = kindSentinel(KindUnexpected)
)

// ErrMalformedEnvelope is returned when a successful response does not carry
// exactly one of data or errors.
var ErrMalformedEnvelope = errors.New("asana: malformed response envelope")

type kindSentinel ErrorKind

func (k kindSentinel) Error() string { return "asana: " + ErrorKind(k).String() }

// ErrorDetail is one entry of the envelope's errors list.
type ErrorDetail struct {
	Message string `json:"message"`
	Phrase  string `json:"phrase,omitempty"`
	Help    string `json:"help,omitempty"`
}

// Error is the typed failure returned for every non-2xx response.
// Message and Phrase come from the first errors entry; Phrase is set by the
// API on server errors.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Phrase     string
	Errors     []ErrorDetail
}

func newError(status int, details []ErrorDetail) *Error {
	e := &Error{
		Kind:       KindForStatus(status),
		StatusCode: status,
		Errors:     details,
	}
	if len(details) > 0 {
		e.Message = details[0].Message
		e.Phrase = details[0].Phrase
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("asana: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	if e.Phrase != "" {
		msg += " [phrase: " + e.Phrase + "]"
	}
	return msg
}

// Is matches the kind sentinels, e.g. errors.Is(err, asana.ErrNotFound).
func (e *Error) Is(target error) bool {
	k, ok := target.(kindSentinel)
	return ok && e != nil && ErrorKind(k) == e.Kind
}

// AsError extracts the typed API error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsInvalidRequest(err error) bool  { return errors.Is(err, ErrInvalidRequest) }
func IsNoAuthorization(err error) bool { return errors.Is(err, ErrNoAuthorization) }
func IsForbidden(err error) bool       { return errors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsServer(err error) bool          { return errors.Is(err, ErrServer) }
