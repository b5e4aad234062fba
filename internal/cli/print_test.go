package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-list/internal/studentlist"
)

const leanneJSON = `[{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz","address":{"city":"Gwenborough"}}]`

func newDirectory(t *testing.T, status int, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrint_Table(t *testing.T) {
	url := newDirectory(t, http.StatusOK, leanneJSON)

	out, err := run(t, "print", "--url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Student List")
	assert.Contains(t, out, "Leanne Graham")
	assert.Contains(t, out, "Gwenborough")
	assert.NotContains(t, out, "\x1b[", "non-terminal output is plain")
}

func TestPrint_JSON(t *testing.T) {
	url := newDirectory(t, http.StatusOK, leanneJSON)

	out, err := run(t, "print", "--url", url, "--output", "json")
	require.NoError(t, err)

	var state studentlist.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.False(t, state.Loading)
	require.Len(t, state.Students, 1)
	assert.Equal(t, "Gwenborough", state.Students[0].City())
}

func TestPrint_YAML(t *testing.T) {
	url := newDirectory(t, http.StatusOK, leanneJSON)

	out, err := run(t, "print", "--url", url, "-o", "yaml")
	require.NoError(t, err)

	var state studentlist.State
	require.NoError(t, yaml.Unmarshal([]byte(out), &state))
	require.Len(t, state.Students, 1)
	assert.Equal(t, "Leanne Graham", state.Students[0].Name)
	assert.Contains(t, out, "city: Gwenborough")
}

func TestPrint_Failure(t *testing.T) {
	url := newDirectory(t, http.StatusInternalServerError, `oops`)

	out, err := run(t, "print", "--url", url)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, "Error: Failed to fetch data\n", out)
}

func TestPrint_UnsupportedFormat(t *testing.T) {
	_, err := run(t, "print", "--output", "xml")
	assert.ErrorContains(t, err, "unsupported output format: xml")
}

func TestPrint_URLFromConfig(t *testing.T) {
	url := newDirectory(t, http.StatusOK, leanneJSON)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
env: "dev"
storage_path: "unused.db"
http_server:
  address: "localhost:0"
source:
  url: %q
`, url)), 0o600))

	out, err := run(t, "print", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Leanne Graham")
}

func TestPrint_URLFromSourceOnlyConfig(t *testing.T) {
	url := newDirectory(t, http.StatusOK, leanneJSON)

	path := filepath.Join(t.TempDir(), "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("source:\n  url: %q\n", url)), 0o600))

	out, err := run(t, "print", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Leanne Graham")
}

func TestPrint_BadConfig(t *testing.T) {
	_, err := run(t, "print", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}
