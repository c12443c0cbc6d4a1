package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/clip-to-notion/config"
	"github.com/gaurav-prasanna/clip-to-notion/core/notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithInput(t, "", args...)
	return out, err
}

// executeWithInput runs the root command with input as stdin and returns
// stdout and stderr.
func executeWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		flagConfigPath, flagDebug = "", false
		flagTags, flagBody, flagDryRun, flagOutputDir = nil, false, false, ""
		flagDBTitle, flagDBSave = notion.DefaultDatabaseTitle, false
		notionHTTPClient = nil
		rootCmd.SetIn(nil)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// redirectTransport sends every request to target, keeping the path.
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func TestRunDryRun(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvDatabaseID, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Example Title</title>
<meta property="og:description" content="This is a description."></head></html>`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, config.Config{DatabaseID: "db-1", NotionAPIKey: "k"}))

	out, err := execute(t, "run", server.URL, "--dry-run", "--tags", "test,example", "--config", path)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "db-1", payload["parent"].(map[string]any)["database_id"])

	props := payload["properties"].(map[string]any)
	tags := props["Tags"].(map[string]any)["multi_select"].([]any)
	require.Len(t, tags, 2)
	assert.Equal(t, "test", tags[0].(map[string]any)["name"])
	assert.Equal(t, "example", tags[1].(map[string]any)["name"])
}

func TestRunTagsKeepQuotes(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvDatabaseID, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Quoted</title></head></html>`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, config.Config{DatabaseID: "db-1", NotionAPIKey: "k"}))

	out, err := execute(t, "run", server.URL, "--dry-run", "--tags", `say "hi",plain`, "-t", "last", "--config", path)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	tags := payload["properties"].(map[string]any)["Tags"].(map[string]any)["multi_select"].([]any)
	require.Len(t, tags, 3)
	assert.Equal(t, `say "hi"`, tags[0].(map[string]any)["name"])
	assert.Equal(t, "plain", tags[1].(map[string]any)["name"])
	assert.Equal(t, "last", tags[2].(map[string]any)["name"])
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   []string
	}{
		{"none", nil, nil},
		{"single", []string{"go"}, []string{"go"}},
		{"comma separated", []string{"a,b,a"}, []string{"a", "b", "a"}},
		{"repeated flag", []string{"a", "b,c"}, []string{"a", "b", "c"}},
		{"quotes kept", []string{`"x",y'`}, []string{`"x"`, "y'"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTags(tt.values))
		})
	}
}

func TestRunMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, "run", "https://example.com", "--config", path)
	require.Error(t, err)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "config file not found")
	assert.Contains(t, buf.String(), "Hint: run `clip-to-notion init`")
}

func TestRunInvalidURL(t *testing.T) {
	_, err := execute(t, "run", "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestInitExistingConfigDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, config.Config{DatabaseID: "db-1", NotionAPIKey: "k"}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, errOut, err := executeWithInput(t, "n\n", "init", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, errOut, "config file already exists at "+path)
	assert.Contains(t, out, "Do you want to overwrite it? (y/n)")
	assert.Contains(t, out, "Aborting initialization.")
	assert.NotContains(t, out, "Notion API key")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestInitCreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, _, err := executeWithInput(t, "secret_abc\ndb-42\n", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at: "+path)

	cfg, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{DatabaseID: "db-42", NotionAPIKey: "secret_abc"}, cfg)
}

func TestDBCreateSave(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvDatabaseID, "")

	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"database","id":"new-db-id","properties":{}}`))
	}))
	defer server.Close()
	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, config.Config{DatabaseID: "old-db", NotionAPIKey: "secret_abc"}))

	notionHTTPClient = &http.Client{Transport: redirectTransport{target: target}}
	out, errOut, err := executeWithInput(t, "", "db", "create", "parent-page", "--save", "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "new-db-id\n", out)
	assert.Contains(t, errOut, "Saved database ID to "+path)
	assert.Equal(t, "Bearer secret_abc", gotAuth)
	assert.Equal(t, "/v1/databases", gotPath)

	cfg, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, config.Config{DatabaseID: "new-db-id", NotionAPIKey: "secret_abc"}, cfg)
}

func TestDBCreateWithoutSaveLeavesConfig(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvDatabaseID, "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"database","id":"new-db-id","properties":{}}`))
	}))
	defer server.Close()
	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, config.Save(path, config.Config{DatabaseID: "old-db", NotionAPIKey: "secret_abc"}))

	notionHTTPClient = &http.Client{Transport: redirectTransport{target: target}}
	out, _, err := executeWithInput(t, "", "db", "create", "parent-page", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "new-db-id\n", out)

	cfg, err := config.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "old-db", cfg.DatabaseID)
}
