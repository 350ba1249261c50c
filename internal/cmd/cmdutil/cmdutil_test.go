package cmdutil_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/cmd/cmdutil"
	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/sources"
)

type staticLoader struct {
	snapshot *dictionary.Snapshot
	err      error
}

func (l staticLoader) Descriptor() sources.Descriptor {
	return sources.Descriptor{Kind: sources.KindJSON, Location: "dict.json"}
}

func (l staticLoader) Load(context.Context) (*dictionary.Snapshot, error) {
	return l.snapshot, l.err
}

func TestLoad(t *testing.T) {
	snap := dictionary.NewSnapshot("dict.json", "json", time.Now(), []dictionary.Entry{
		{Term: "x", CanonicalName: "X", Category: dictionary.CategoryCauses},
	})
	app := &appcontext.Mock{LoaderFunc: func(_ context.Context, descriptor string) (sources.Loader, error) {
		assert.Equal(t, "dict.json", descriptor)
		return staticLoader{snapshot: snap}, nil
	}}
	logs := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logs.Logger)

	got, err := cmdutil.Load(ctx, app, "dict.json")
	require.NoError(t, err)
	assert.Same(t, snap, got)
	assert.True(t, logs.Contains(`"source":"dict.json"`))
	assert.True(t, logs.Contains(`"message":"Loaded snapshot"`))
}

func TestLoadPropagatesErrors(t *testing.T) {
	loadErr := errors.NewLoadError("dict.json", "json", "reading file", nil)
	app := &appcontext.Mock{LoaderFunc: func(context.Context, string) (sources.Loader, error) {
		return staticLoader{err: loadErr}, nil
	}}

	_, err := cmdutil.Load(context.Background(), app, "dict.json")
	assert.Same(t, loadErr, err)
}

func TestLoadWarnsOnTimeout(t *testing.T) {
	loadErr := errors.NewLoadError("neo4j:default", "neo4j", "running graph query", context.DeadlineExceeded)
	app := &appcontext.Mock{LoaderFunc: func(context.Context, string) (sources.Loader, error) {
		return staticLoader{err: loadErr}, nil
	}}
	logs := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logs.Logger)

	_, err := cmdutil.Load(ctx, app, "neo4j:default")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, logs.Contains(`"level":"warn"`))
	assert.True(t, logs.Contains("Source timed out"))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}
	require.NoError(t, cmdutil.Write(&buf, app, map[string]int{"total": 2}))
	assert.Equal(t, "{\n  \"total\": 2\n}\n", buf.String())

	app.OutputFormatFunc = func() string { return "xml" }
	assert.Error(t, cmdutil.Write(&buf, app, nil))
}
