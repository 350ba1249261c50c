// Package api loads dictionary snapshots from a running dictionary HTTP API.
//
// The API serves entries in pages:
//
//	GET <url>?page=N&page_size=M
//	{"entries": [...], "total": T, "page": N, "page_size": M}
//
// Pages are fetched until total entries have been collected. A response
// without a total is a single complete page. A response that reports a
// page number must report the page that was requested.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/agentstation/dictcheck/internal/transport"
	"github.com/agentstation/dictcheck/pkg/constants"
	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/sources"
)

// Page is one response body.
type Page struct {
	Entries  []map[string]any `json:"entries"`
	Total    *json.Number     `json:"total,omitempty"`
	Page     int              `json:"page,omitempty"`
	PageSize int              `json:"page_size,omitempty"`
}

// Loader reads every page of an HTTP dictionary source.
type Loader struct {
	desc   sources.Descriptor
	client *transport.Client
	opts   *sources.Options
}

var _ sources.Loader = (*Loader)(nil)

// New creates an HTTP loader. A nil client gets one built from opts
// (timeout and bearer token).
func New(desc sources.Descriptor, client *transport.Client, opts ...sources.Option) (*Loader, error) {
	u, err := url.Parse(desc.Location)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.NewValidationError("url", desc.Location, "must be an absolute http(s) URL")
	}
	o := sources.Apply(opts...)
	if client == nil {
		client = transport.New(transport.ForToken(o.Token), transport.WithTimeout(o.Timeout))
	}
	return &Loader{desc: desc, client: client, opts: o}, nil
}

// Descriptor returns the source this loader reads.
func (l *Loader) Descriptor() sources.Descriptor {
	return l.desc
}

// Load fetches pages until the advertised total is reached. Short, long
// or shifting results are load errors rather than truncated snapshots.
func (l *Loader) Load(ctx context.Context) (*dictionary.Snapshot, error) {
	logger := logging.FromContext(ctx)
	source, kind := l.desc.Location, l.desc.Kind.String()

	var (
		records []map[string]any
		total   = -1
	)
	for page := 1; ; page++ {
		if page > constants.MaxPages {
			return nil, errors.NewLoadError(source, kind, fmt.Sprintf("gave up after %d pages", constants.MaxPages), nil)
		}

		body, err := l.fetch(ctx, page)
		if err != nil {
			return nil, errors.NewLoadError(source, kind, fmt.Sprintf("fetching page %d", page), err)
		}
		if body.Page != 0 && body.Page != page {
			return nil, errors.NewLoadError(source, kind,
				fmt.Sprintf("requested page %d but server returned page %d", page, body.Page), nil)
		}

		if body.Total == nil {
			if page == 1 {
				records = body.Entries
				break
			}
			return nil, errors.NewLoadError(source, kind, fmt.Sprintf("page %d has no total", page), nil)
		}

		pageTotal, err := strconv.Atoi(body.Total.String())
		if err != nil || pageTotal < 0 {
			return nil, errors.NewLoadError(source, kind, fmt.Sprintf("invalid total %q on page %d", body.Total.String(), page), err)
		}
		if total >= 0 && pageTotal != total {
			return nil, errors.NewLoadError(source, kind,
				fmt.Sprintf("total changed from %d to %d on page %d", total, pageTotal, page), nil)
		}
		total = pageTotal

		logger.Debug().
			Str("source", source).
			Int("page", page).
			Int("entries", len(body.Entries)).
			Int("total", total).
			Msg("Fetched dictionary page")

		records = append(records, body.Entries...)
		if len(records) > total {
			return nil, errors.NewLoadError(source, kind,
				fmt.Sprintf("received %d entries but total is %d", len(records), total), nil)
		}
		if len(records) == total {
			break
		}
		if len(body.Entries) == 0 {
			return nil, errors.NewLoadError(source, kind,
				fmt.Sprintf("page %d is empty after %d of %d entries", page, len(records), total), nil)
		}
	}

	entries := make([]dictionary.Entry, 0, len(records))
	for i, rec := range records {
		e, err := dictionary.DecodeRecord(i+1, rec)
		if err != nil {
			return nil, errors.WrapLoad(source, kind, err)
		}
		entries = append(entries, e)
	}

	snapshot := dictionary.NewSnapshot(source, kind, l.opts.Now(), entries)
	logger.Debug().
		Str("source", source).
		Int("entries", snapshot.Len()).
		Msg("Loaded dictionary from API")
	return snapshot, nil
}

func (l *Loader) fetch(ctx context.Context, page int) (*Page, error) {
	u, err := url.Parse(l.desc.Location)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(l.opts.PageSize))
	u.RawQuery = q.Encode()
	endpoint := u.String()

	resp, err := l.client.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var body Page
	if err := transport.DecodeResponse(resp, endpoint, &body); err != nil {
		return nil, err
	}
	return &body, nil
}
