// Package inspect provides the inspect command.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dictcheck/internal/appcontext"
	"github.com/agentstation/dictcheck/internal/cmd/cmdutil"
	"github.com/agentstation/dictcheck/pkg/constants"
	"github.com/agentstation/dictcheck/pkg/logging"
	"github.com/agentstation/dictcheck/pkg/reconciler"
)

// NewCommand creates the inspect command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:     "inspect <source>",
		Aliases: []string{"count", "show"},
		GroupID: "core",
		Short:   "Show entry counts and the latest entries of one source",
		Long: `Inspect loads one dictionary source and prints its total entry count,
the count per category and the last entries in load order. Duplicate
keys are reported as an error after the snapshot is shown.`,
		Example: `  dictcheck inspect neo4j:default
  dictcheck inspect dict/symptoms.csv --last 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithOperation(cmd.Context(), "inspect")

			snapshot, err := cmdutil.Load(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := cmdutil.Write(cmd.OutOrStdout(), app, NewView(snapshot, last)); err != nil {
				return err
			}
			return reconciler.CheckDuplicates(snapshot)
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", constants.DefaultInspectLast, "number of trailing entries to show")

	return cmd
}
