// Package cmdutil provides helpers shared by dictcheck commands.
package cmdutil

import (
	"context"
	"io"
	"time"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/cmd/output"
	"github.com/agentstation/dictcheck/pkg/dictionary"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
)

// Load resolves descriptor through the app and loads its snapshot.
func Load(ctx context.Context, app appcontext.Interface, descriptor string) (*dictionary.Snapshot, error) {
	logger := logging.FromContext(ctx)

	loader, err := app.Loader(ctx, descriptor)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	snapshot, err := loader.Load(ctx)
	if err != nil {
		if errors.IsTimeout(err) {
			logger.Warn().Err(err).Str("source", descriptor).
				Msg("Source timed out; raise http.timeout or neo4j.timeout in the config")
			return nil, err
		}
		logger.Debug().Err(err).Str("source", descriptor).Msg("Load failed")
		return nil, err
	}

	logger.Info().
		Str("source", descriptor).
		Str("kind", snapshot.Kind()).
		Int("entries", snapshot.Len()).
		Dur("duration", time.Since(start)).
		Msg("Loaded snapshot")
	return snapshot, nil
}

// Write renders view in the app's output format.
func Write(w io.Writer, app appcontext.Interface, view any) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(w, view)
}
