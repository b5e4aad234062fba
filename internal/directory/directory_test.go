package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-list/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL + "/users")
	client.HTTPClient = server.Client()
	return client
}

func TestNew_DefaultURL(t *testing.T) {
	assert.Equal(t, config.DefaultSourceURL, New("").URL)
	assert.Equal(t, "http://example.test/users", New("http://example.test/users").URL)
}

func TestFetchStudents_Request(t *testing.T) {
	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	})

	students, err := client.FetchStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchStudents_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz","address":{"city":"Gwenborough","street":"Kulas Light"}},
			{"id":2,"name":"Ervin Howell","email":"Shanna@melissa.tv"},
			{"id":3,"name":"Clementine Bauch","email":"Nathan@yesenia.net","address":{}}
		]`)
	})

	students, err := client.FetchStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, 1, students[0].ID)
	assert.Equal(t, "Leanne Graham", students[0].Name)
	assert.Equal(t, "Gwenborough", students[0].City())
	assert.Nil(t, students[1].Address)
	assert.Equal(t, "", students[1].City())
	assert.Equal(t, "", students[2].City())
}

func TestFetchStudents_ZeroID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"id":0,"name":"Zero"},{"id":1,"name":"One"}]`)
	})

	students, err := client.FetchStudents(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, 0, students[0].ID)
	assert.Equal(t, "Zero", students[0].Name)
	assert.Equal(t, 1, students[1].ID)
}

func TestFetchStudents_Status(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusForbidden} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
				fmt.Fprint(w, `[{"id":1}]`)
			})

			_, err := client.FetchStudents(context.Background())
			require.Error(t, err)
			assert.EqualError(t, err, "Failed to fetch data")

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, code, statusErr.Code)
		})
	}
}

func TestFetchStudents_Parse(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: `<html>`, want: "invalid character '<' looking for beginning of value"},
		{name: "object", body: `{"id":1}`},
		{name: "null", body: `null`, want: "response body is not a list"},
		{name: "missing id", body: `[{"id":1},{"name":"x"}]`, want: "record 1: field ID is required"},
		{name: "null id", body: `[{"id":null,"name":"x"}]`, want: "record 0: field ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.body)
			})

			_, err := client.FetchStudents(context.Background())
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			if tt.want != "" {
				assert.EqualError(t, err, tt.want)
			}
		})
	}
}

func TestFetchStudents_Transport(t *testing.T) {
	client := New("https://directory.invalid/users")
	client.HTTPClient = &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("Network request failed")
		}),
	}

	_, err := client.FetchStudents(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.EqualError(t, err, "Network request failed")
}

func TestFetchStudents_Cancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchStudents(ctx)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.ErrorIs(t, err, context.Canceled)
}
