package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dictcheck/internal/sources/api"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/sources"
)

func entries(n, offset int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		term := fmt.Sprintf("term-%d", offset+i)
		out[i] = map[string]any{"term": term, "canonical_name": term, "category": "components"}
	}
	return out
}

// pagedServer serves total entries in pages. mutate may alter each
// response before it is written.
func pagedServer(t *testing.T, total int, mutate func(page int, body map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
		start := (page - 1) * size
		n := max(0, min(size, total-start))
		body := map[string]any{"entries": entries(n, start), "total": total, "page": page, "page_size": size}
		if mutate != nil {
			mutate(page, body)
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func load(t *testing.T, url string, opts ...sources.Option) error {
	t.Helper()
	_, err := newLoader(t, url, opts...).Load(context.Background())
	return err
}

func newLoader(t *testing.T, url string, opts ...sources.Option) *api.Loader {
	t.Helper()
	l, err := api.New(sources.Descriptor{Kind: sources.KindHTTP, Location: url}, nil, opts...)
	require.NoError(t, err)
	return l
}

func TestLoadAllPages(t *testing.T) {
	srv := pagedServer(t, 7, nil)

	snap, err := newLoader(t, srv.URL+"/api/dictionary", sources.WithPageSize(3)).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Len())
	assert.Equal(t, "term-0", snap.Entry(0).Term)
	assert.Equal(t, "term-6", snap.Entry(6).Term)
	assert.Equal(t, "http", snap.Kind())
}

func TestEmptyPageBeforeTotal(t *testing.T) {
	srv := pagedServer(t, 7, func(page int, body map[string]any) {
		if page == 2 {
			body["entries"] = []map[string]any{}
		}
	})

	err := load(t, srv.URL, sources.WithPageSize(3))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.Contains(t, err.Error(), "page 2 is empty after 3 of 7 entries")
}

func TestTotalChanges(t *testing.T) {
	srv := pagedServer(t, 6, func(page int, body map[string]any) {
		if page == 2 {
			body["total"] = 9
		}
	})

	err := load(t, srv.URL, sources.WithPageSize(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total changed from 6 to 9")
}

func TestServerIgnoresPageParameter(t *testing.T) {
	srv := pagedServer(t, 6, func(page int, body map[string]any) {
		body["entries"] = entries(3, 0)
		body["page"] = 1
	})

	err := load(t, srv.URL, sources.WithPageSize(3))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.Contains(t, err.Error(), "requested page 2 but server returned page 1")
}

func TestMoreEntriesThanTotal(t *testing.T) {
	srv := pagedServer(t, 2, func(page int, body map[string]any) {
		body["entries"] = entries(3, 0)
	})

	err := load(t, srv.URL, sources.WithPageSize(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "received 3 entries but total is 2")
}

func TestNoTotalIsSinglePage(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"entries": [{"term": "电池", "canonical_name": "Battery", "category": "components"}]}`))
	}))
	defer srv.Close()

	snap, err := newLoader(t, srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 1, calls)
}

func TestEmptyTotal(t *testing.T) {
	srv := pagedServer(t, 0, nil)

	snap, err := newLoader(t, srv.URL).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer srv.Close()

	err := load(t, srv.URL)
	assert.True(t, errors.IsLoadError(err))
	assert.True(t, errors.IsNotFound(err))
}

func TestBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"entries": [], "total": 0}`))
	}))
	defer srv.Close()

	require.NoError(t, load(t, srv.URL, sources.WithToken("s3cret")))
	assert.Equal(t, "Bearer s3cret", got)
}

func TestInvalidEntry(t *testing.T) {
	srv := pagedServer(t, 1, func(page int, body map[string]any) {
		body["entries"] = []map[string]any{{"term": "x", "canonical_name": "X", "category": "weather"}}
	})

	err := load(t, srv.URL)
	var le *errors.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Record)
	assert.Equal(t, "category", le.Field)
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := api.New(sources.Descriptor{Kind: sources.KindHTTP, Location: "ftp://x"}, nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestKeepsExistingQuery(t *testing.T) {
	var lang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = r.URL.Query().Get("lang")
		_, _ = w.Write([]byte(`{"entries": [], "total": 0}`))
	}))
	defer srv.Close()

	require.NoError(t, load(t, srv.URL+"?lang=zh"))
	assert.Equal(t, "zh", lang)
}
