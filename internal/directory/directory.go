// Package directory is the outbound side of the application: a tiny HTTP
// client that reads the list of students from the remote user directory.
//
// One call = one GET. There is no retry, no caching, and no timeout on
// the client; the only way to stop an in-flight request is to cancel the
// context passed to FetchStudents.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/aanand-mishra/student-list/internal/config"
	"github.com/aanand-mishra/student-list/internal/types"
	"github.com/aanand-mishra/student-list/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// FetchFailedMessage is the only text a non-success status produces.
// The status code is kept on StatusError; the body is never read.
const FetchFailedMessage = "Failed to fetch data"

// TransportError means no response was received: DNS failure, refused
// connection, aborted request, and so on.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means a response arrived but its status was not 2xx.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return FetchFailedMessage }

// ParseError means the body could not be read as a list of students.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Client fetches students from URL.
// HTTPClient is exported so tests can point it at an httptest server.
type Client struct {
	HTTPClient *http.Client
	URL        string
}

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// recordKey tracks whether "id" was sent at all. On a pointer, required
// means non-nil, so "id":0 passes and a missing or null id does not.
type recordKey struct {
	ID *int `json:"id" validate:"required"`
}

// New returns a Client for rawURL. An empty rawURL means the default
// remote directory.
func New(rawURL string) *Client {
	if rawURL == "" {
		rawURL = config.DefaultSourceURL
	}
	return &Client{
		HTTPClient: &http.Client{},
		URL:        rawURL,
	}
}

// FetchStudents issues one GET to the directory and returns the records
// in server order.
//
// Every failure is one of *TransportError, *StatusError or *ParseError,
// so callers can tell them apart with errors.As if they care to.
func (c *Client) FetchStudents(ctx context.Context) ([]types.Student, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &TransportError{Err: transportCause(err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Err: transportCause(err)}
	}

	var students []types.Student
	if err := json.Unmarshal(body, &students); err != nil {
		return nil, &ParseError{Err: err}
	}
	// "null" decodes without error into a nil slice.
	if students == nil {
		return nil, &ParseError{Err: errors.New("response body is not a list")}
	}

	// Second pass over the same array, for key presence only.
	var keys []recordKey
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, &ParseError{Err: err}
	}

	for i, key := range keys {
		if err := validate.Struct(key); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				err = errors.New(response.ValidationMessage(verrs))
			}
			return nil, &ParseError{Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}

	return students, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

// transportCause strips the *url.Error wrapper ("Get \"...\": <cause>")
// so the message is the cause alone.
func transportCause(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
