package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dictcheck/internal/sources/graph"
	"github.com/agentstation/dictcheck/pkg/errors"
)

func testConfig() *Config {
	return &Config{
		Neo4j:     Neo4jConfig{Timeout: time.Minute, Queries: map[string]string{}},
		HTTP:      HTTPConfig{Timeout: time.Second, PageSize: 100},
		LogFormat: "json",
		LogOutput: "discard",
	}
}

type fakeSession struct {
	rows   []map[string]any
	closed bool
}

func (f *fakeSession) Run(context.Context, string, map[string]any) ([]map[string]any, error) {
	return f.rows, nil
}

func (f *fakeSession) Close(context.Context) error {
	f.closed = true
	return nil
}

func newTestApp(t *testing.T, opts ...Option) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger := zerolog.Nop()
	base := []Option{WithConfig(testConfig()), WithLogger(&logger), WithOutput(&out)}
	a, err := New("1.0.0", "abc123", "2026-10-16", "test", append(base, opts...)...)
	require.NoError(t, err)
	return a, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApp_New(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-10-16", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Config())
	assert.Len(t, a.RunID(), 36)
}

func TestExecute_ReconcileReportsDifferencesAndSucceeds(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "components.json",
		`[{"term": "BTB连接器", "canonical_name": "BTB Connector", "category": "components"}]`)
	b := writeFile(t, dir, "empty.csv", "term,canonical_name,category\n")

	app, out := newTestApp(t)
	err := app.Execute(context.Background(), []string{"reconcile", a, b, "--details"})
	require.NoError(t, err)
	assert.Equal(t, ExitOK, ExitCode(err))

	assert.Contains(t, out.String(), "Missing from B: 1")
	assert.Contains(t, out.String(), "- components/BTB连接器")
}

func TestExecute_ReconcileJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[{"term": "x", "canonical_name": "X", "category": "causes"}]`)

	app, out := newTestApp(t)
	require.NoError(t, app.Execute(context.Background(), []string{"reconcile", a, a, "-o", "json"}))
	assert.Contains(t, out.String(), `"has_differences": false`)
	assert.Contains(t, out.String(), `"missing_from_a": []`)
}

func TestExecute_ReconcileAgainstGraph(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "- {term: 补焊, canonical_name: Resolder, category: countermeasures, description: old}\n")

	session := &fakeSession{rows: []map[string]any{
		{"term": "补焊", "canonical_name": "Resolder", "category": "countermeasures", "description": "new"},
	}}
	connects := 0
	app, out := newTestApp(t, WithGraphConnector(func(context.Context, graph.Config) (graph.Session, error) {
		connects++
		return session, nil
	}))

	require.NoError(t, app.Execute(context.Background(), []string{"reconcile", a, "neo4j:default", "-d"}))
	assert.Contains(t, out.String(), `description: "old" != "new"`)
	assert.Equal(t, 1, connects)

	require.NoError(t, app.Shutdown(context.Background()))
	assert.True(t, session.closed)
}

func TestExecute_LoadErrorExitCode(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[]`)
	bad := writeFile(t, dir, "bad.csv", "term,canonical_name\nx,X\n")

	app, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"reconcile", a, bad})
	require.Error(t, err)
	assert.Equal(t, ExitLoad, ExitCode(err))
}

func TestExecute_DuplicateKeyExitCode(t *testing.T) {
	dir := t.TempDir()
	dup := writeFile(t, dir, "dup.json", `[
		{"term": "x", "canonical_name": "1", "category": "causes"},
		{"term": "x", "canonical_name": "2", "category": "causes"}
	]`)

	app, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"reconcile", dup, dup})
	require.Error(t, err)
	assert.Equal(t, ExitDataError, ExitCode(err))
}

func TestExecute_Inspect(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[
		{"term": "a", "canonical_name": "A", "category": "symptoms"},
		{"term": "b", "canonical_name": "B", "category": "symptoms"},
		{"term": "c", "canonical_name": "C", "category": "causes"}
	]`)

	app, out := newTestApp(t)
	require.NoError(t, app.Execute(context.Background(), []string{"inspect", a, "--last", "1"}))
	assert.Contains(t, out.String(), "Entries:   3")
	assert.Contains(t, out.String(), "Last 1 entries:")
}

func TestExecute_ValidateChecksEverySource(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `[{"term": "x", "canonical_name": "X", "category": "causes"}]`)
	missing := filepath.Join(dir, "missing.json")

	app, out := newTestApp(t)
	err := app.Execute(context.Background(), []string{"validate", good, missing})
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.Contains(t, out.String(), "ok      "+good)
	assert.Contains(t, out.String(), "FAILED  "+missing)
}

func TestExecute_ReconcileRejectsUnknownIgnoreField(t *testing.T) {
	app, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"reconcile", "a.json", "b.json", "--ignore-field", "term"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, ExitDataError, ExitCode(err))
}

func TestExecute_InvalidFormat(t *testing.T) {
	app, _ := newTestApp(t)
	err := app.Execute(context.Background(), []string{"version", "-o", "xml"})
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	app, out := newTestApp(t)
	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "dictcheck 1.0.0")
	assert.Contains(t, out.String(), "commit: abc123")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
	assert.Equal(t, ExitLoad, ExitCode(errors.NewLoadError("a.json", "json", "reading file", os.ErrNotExist)))
	assert.Equal(t, ExitDataError, ExitCode(errors.NewDuplicateKeyError("a", nil)))
	assert.Equal(t, ExitDataError, ExitCode(errors.NewValidationError("source", "x", "bad")))
	assert.Equal(t, ExitDataError, ExitCode(errors.Join(
		errors.NewLoadError("a", "json", "x", nil),
		errors.NewDuplicateKeyError("b", nil),
	)))
}
