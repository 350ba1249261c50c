// Package validate provides the validate command.
package validate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/cmd/cmdutil"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/reconciler"
)

// NewCommand creates the validate command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate <source>...",
		GroupID: "management",
		Short:   "Check that sources load and hold no duplicate keys",
		Long: `Validate loads each source, checks every entry against the record shape
and looks for duplicate (term, category) keys. Every source is checked
even when an earlier one fails; the command exits non-zero if any did.`,
		Example: `  dictcheck validate dict/*.json neo4j:default`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context(), "validate")
			logger := logging.FromContext(ctx)

			var (
				view View
				errs []error
			)
			for _, descriptor := range args {
				row := Row{Source: descriptor, Status: StatusOK}
				snapshot, err := cmdutil.Load(ctx, app, descriptor)
				if err == nil {
					row.Kind = snapshot.Kind()
					row.Entries = snapshot.Len()
					err = reconciler.CheckDuplicates(snapshot)
				}
				if err != nil {
					logger.Warn().Err(err).Str("source", descriptor).Msg("Validation failed")
					row.Status = StatusFailed
					row.Error = err.Error()
					errs = append(errs, err)
				}
				view.Sources = append(view.Sources, row)
			}

			if err := cmdutil.Write(cmd.OutOrStdout(), app, view); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}

	return cmd
}
