// Package reconcile implements the reconcile command, which checks the
// fleet export against the HR roster and refreshes the plate mapping.
package reconcile

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/costops/fleetbook/internal/cmd/globals"
	"github.com/costops/fleetbook/internal/cmd/output"
	"github.com/costops/fleetbook/pkg/fleet"
	"github.com/costops/fleetbook/pkg/logging"
	"github.com/costops/fleetbook/pkg/reconcile"
	"github.com/costops/fleetbook/pkg/roster"
)

// AppContext defines the interface the reconcile command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	Defaults() globals.Defaults
}

// NewCommand creates the reconcile command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	defaults := app.Defaults()

	var (
		fleetPath   string
		hrPath      string
		outDir      string
		threshold   int
		excludePool bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile the fleet export against the HR roster",
		Long: `Reconcile matches fleet drivers to HR employees by fuzzy name
comparison, then writes three review files: drivers with a vehicle but
no HR match, matched drivers whose cost centers disagree, and the
refreshed plate-to-cost-center mapping the export command consumes.`,
		Example: `  fleetbook reconcile --fleet fleet.xlsx --hr roster.xlsx
  fleetbook reconcile --fleet fleet.xlsx --hr roster.xlsx --threshold 90 --out-dir review`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			logger := app.Logger()

			fl, err := fleet.Load(fleetPath)
			if err != nil {
				return err
			}
			hr, err := roster.Load(hrPath)
			if err != nil {
				return err
			}

			rec, err := reconcile.New(
				reconcile.WithThreshold(threshold),
				reconcile.WithExcludePool(excludePool),
			)
			if err != nil {
				return err
			}

			result, err := rec.Run(ctx, hr, fl)
			if err != nil {
				return err
			}

			paths, err := result.WriteOutputs(outDir)
			if err != nil {
				return err
			}

			logger.Info().Str("dir", outDir).Msg(result.Summary())

			flags := globals.Parse(cmd)
			if flags.Quiet {
				return nil
			}

			return output.FormatAny(output.ReconcileSummary{
				FleetRows:    result.Stats.FleetRows,
				RosterRows:   result.Stats.RosterRows,
				Matched:      result.Stats.Matched,
				MissingInHR:  len(result.MissingInHR),
				Mismatches:   len(result.Mismatches),
				MappingRows:  len(result.Mapping),
				MissingFile:  paths.MissingInHR,
				MismatchFile: paths.Mismatches,
				MappingFile:  paths.Mapping,
			}, flags)
		},
	}

	cmd.Flags().StringVar(&fleetPath, "fleet", "", "fleet export .xlsx (required)")
	cmd.Flags().StringVar(&hrPath, "hr", "", "HR roster .xlsx (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", defaults.OutputDir, "directory for the three output files")
	cmd.Flags().IntVar(&threshold, "threshold", defaults.MatchThreshold, "minimum fuzzy match score (1-100)")
	cmd.Flags().BoolVar(&excludePool, "exclude-pool", defaults.ExcludePool, "skip pool vehicles in the missing-in-HR view")

	_ = cmd.MarkFlagRequired("fleet")
	_ = cmd.MarkFlagRequired("hr")

	return cmd
}
