package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// runCLI executes the root command with args against a fresh config dir
// and returns stdout.
func runCLI(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config-dir", configDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func showJSON(t *testing.T, configDir string, args ...string) showOutput {
	t.Helper()
	stdout, err := runCLI(t, configDir, append([]string{"show", "--json"}, args...)...)
	require.NoError(t, err)
	var out showOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), stdout)
	return out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gridview v")
	assert.Contains(t, out, "module: "+modulePath)
}

func TestInitWritesConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	out, err := runCLI(t, dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	var written types.Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, types.SourceSample, written.Source)
	assert.Equal(t, types.DefaultPageSize, written.PageSize)
	assert.Equal(t, types.DefaultTVMazeQuery, written.TVMaze.Query)
	assert.Equal(t, types.DefaultTVMazeTimeout, written.TVMaze.Timeout)
	assert.Equal(t, types.DefaultLogLevel, written.LogLevel)

	// A second init leaves the file alone.
	out, err = runCLI(t, dir, "init", "--page-size", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	assert.Equal(t, types.DefaultPageSize, showJSON(t, dir).Page.Size)

	_, err = runCLI(t, dir, "init", "--force", "--page-size", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, showJSON(t, dir).Page.Size)
}

func TestShowTable(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "first page",
			args:     []string{"--page-size", "2"},
			contains: []string{"Name", "Age", "Status", "Alice", "Bob", "Page 1 of 2  (3 of 3 rows)"},
			excludes: []string{"Charlie"},
		},
		{
			name:     "second page",
			args:     []string{"--page-size", "2", "--page", "2"},
			contains: []string{"Charlie", "Page 2 of 2"},
			excludes: []string{"Alice"},
		},
		{
			name:     "page past the end clamps",
			args:     []string{"--page-size", "2", "--page", "9"},
			contains: []string{"Charlie", "Page 2 of 2"},
		},
		{
			name:     "filter",
			args:     []string{"--filter", "PEND"},
			contains: []string{"Charlie", "Page 1 of 1  (1 of 3 rows)", "Filter: pend"},
			excludes: []string{"Alice", "Bob"},
		},
		{
			name:     "filter with no match",
			args:     []string{"--filter", "zzz"},
			contains: []string{"Page 1 of 1  (0 of 3 rows)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, dir, append([]string{"show"}, tt.args...)...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestShowJSON(t *testing.T) {
	out := showJSON(t, t.TempDir(), "--filter", "char")

	assert.Equal(t, "char", out.Filter)
	assert.Equal(t, showPage{Index: 1, Count: 1, Size: 10, VisibleRows: 1, TotalRows: 3}, out.Page)
	require.Len(t, out.Columns, 3)
	assert.Equal(t, "name", out.Columns[0].Path)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, 2, out.Rows[0].Index)
	assert.Equal(t, "Charlie", out.Rows[0].Values["name"])
	assert.Equal(t, float64(35), out.Rows[0].Values["age"])
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "page_size: 1\n")

	assert.Equal(t, 3, showJSON(t, dir).Page.Count, "config.yaml")

	t.Setenv("GRIDVIEW_PAGE_SIZE", "2")
	assert.Equal(t, 2, showJSON(t, dir).Page.Count, "env over config.yaml")

	assert.Equal(t, 1, showJSON(t, dir, "--page-size", "3").Page.Count, "flag over env")
}

func TestShowJSONLFromEnv(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(t.TempDir(), "books.jsonl")
	writeFile(t, data, `{"title":"Dune","year":1965}
not json
{"title":"Emma","year":1815}
`)
	t.Setenv("GRIDVIEW_SOURCE", "jsonl")
	t.Setenv("GRIDVIEW_JSONL_PATH", data)

	out := showJSON(t, dir)
	assert.Equal(t, 2, out.Page.TotalRows)
	require.Len(t, out.Columns, 2)
	assert.Equal(t, "title", out.Columns[0].Path)
	assert.Equal(t, "year", out.Columns[1].Path)
	assert.Equal(t, "Dune", out.Rows[0].Values["title"])
}

func TestShowTVMaze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "girls", r.URL.Query().Get("q"))
		fmt.Fprint(w, `[{"score":0.9,"show":{"name":"Girls","type":"Scripted","language":"English",
			"genres":["Drama","Romance"],"runtime":90,"status":"Ended"}}]`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("GRIDVIEW_TVMAZE_ENDPOINT", srv.URL)
	t.Setenv("GRIDVIEW_TVMAZE_QUERY", "girls")

	out, err := runCLI(t, dir, "show", "--source", "tvmaze")
	require.NoError(t, err)
	assert.Contains(t, out, "TV Show: Name")
	assert.Contains(t, out, "Details: Runtime")
	assert.Contains(t, out, "Girls")
	assert.Contains(t, out, "1 hour(s) and 30 minute(s)")
	assert.Contains(t, out, "Drama")

	js := showJSON(t, dir, "--source", "tvmaze")
	require.Len(t, js.Columns, 6)
	assert.Equal(t, "TV Show", js.Columns[0].Group)
	assert.Equal(t, "Details", js.Columns[2].Group)
	assert.Equal(t, types.RendererDuration, js.Columns[4].Renderer)
}

func TestExitCodes(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.jsonl")

	tests := []struct {
		name string
		env  map[string]string
		args []string
		want int
	}{
		{name: "unknown source", args: []string{"show", "--source", "ftp"}, want: exitUserError},
		{name: "zero page size", args: []string{"show", "--page-size", "0"}, want: exitUserError},
		{name: "bad log level", args: []string{"show", "--log-level", "loud"}, want: exitUserError},
		{name: "jsonl without path", args: []string{"show", "--source", "jsonl"}, want: exitUserError},
		{name: "unknown flag", args: []string{"show", "--bogus"}, want: exitUserError},
		{
			name: "unreadable jsonl",
			env:  map[string]string{"GRIDVIEW_JSONL_PATH": missing},
			args: []string{"show", "--source", "jsonl"},
			want: exitSysError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := runCLI(t, t.TempDir(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, ExitCode(err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, ExitCode(nil))
	assert.Equal(t, exitUserError, ExitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, ExitCode(sysError("disk: %w", os.ErrPermission)))
	assert.True(t, errors.Is(sysError("disk: %w", os.ErrPermission), os.ErrPermission))
}

func TestLoadConfigDuration(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "tvmaze:\n  timeout: 3s\n  query: girls\n")

	c, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.TVMaze.Timeout)
	assert.Equal(t, "girls", c.TVMaze.Query)
	assert.Equal(t, types.DefaultTVMazeEndpoint, c.TVMaze.Endpoint)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "page_size: [\n")

	_, err := loadConfig(dir)
	assert.Error(t, err)
}

func TestOpenLogFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "gridview.log")
	f, err := openLogFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		cfg  types.Config
		want string
	}{
		{cfg: types.Config{Source: types.SourceSample}, want: "People"},
		{cfg: types.Config{Source: types.SourceTVMaze, TVMaze: types.TVMazeConfig{Query: "snow"}}, want: `TV Shows: "snow"`},
		{cfg: types.Config{Source: types.SourceJSONL, JSONL: types.JSONLConfig{Path: "/tmp/books.jsonl"}}, want: "books.jsonl"},
		{cfg: types.Config{Source: types.SourceSQLite, SQLite: types.SQLiteConfig{Path: "/tmp/lib.db", Table: "books"}}, want: "lib.db: books"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, title(tt.cfg))
	}
}
