// Package reconcile provides the reconcile command.
package reconcile

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/cmd/cmdutil"
	"github.com/agentstation/dictcheck/pkg/errors"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/reconciler"
)

// NewCommand creates the reconcile command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		details bool
		ignore  []string
	)

	cmd := &cobra.Command{
		Use:     "reconcile <source-a> <source-b>",
		Aliases: []string{"diff", "check"},
		GroupID: "core",
		Short:   "Compare two dictionary sources",
		Long: `Reconcile loads two dictionary sources and reports terms missing from
either side and shared terms whose canonical name, aliases or description
differ. Entries are matched by (term, category).

Sources are descriptors of the form kind:location:
  json:./data/dictionary.json
  csv:/srv/kg/dict/symptoms.csv
  yaml:terms.yaml
  neo4j:default
  http://localhost:8000/api/dictionary

Differences are reported, not treated as failures: the command exits 0
whether or not the sources agree. It exits non-zero when a source cannot
be loaded or contains duplicate keys.`,
		Example: `  dictcheck reconcile dict/components.json neo4j:default
  dictcheck reconcile csv:symptoms.csv http://localhost:8000/api/dictionary --details
  dictcheck reconcile a.json b.json --ignore-field description -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context(), "reconcile")
			logger := logging.FromContext(ctx)

			for _, field := range ignore {
				if !slices.Contains(reconciler.ComparableFields(), field) {
					return errors.NewValidationError("ignore-field", field,
						"must be one of "+strings.Join(reconciler.ComparableFields(), ", "))
				}
			}

			a, err := cmdutil.Load(ctx, app, args[0])
			if err != nil {
				return err
			}
			b, err := cmdutil.Load(ctx, app, args[1])
			if err != nil {
				return err
			}

			result, err := app.Reconciler(reconciler.WithIgnoredFields(ignore...)).Reconcile(a, b)
			if err != nil {
				return err
			}

			logger.Info().
				Int("missing_from_a", len(result.MissingFromA)).
				Int("missing_from_b", len(result.MissingFromB)).
				Int("mismatched", len(result.Mismatches)).
				Msg(result.String())

			return cmdutil.Write(cmd.OutOrStdout(), app, NewView(result, details))
		},
	}

	cmd.Flags().BoolVarP(&details, "details", "d", false, "list every missing key and mismatched field")
	cmd.Flags().StringSliceVar(&ignore, "ignore-field", nil,
		"skip a field when comparing entries (canonical_name, aliases, description)")

	return cmd
}
