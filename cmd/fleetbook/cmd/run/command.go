// Package run implements the run command, which chains reconciliation
// and invoice export in one process.
package run

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/costops/fleetbook/internal/cmd/globals"
	"github.com/costops/fleetbook/internal/cmd/output"
	"github.com/costops/fleetbook/pkg/booking"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/fleet"
	"github.com/costops/fleetbook/pkg/invoice"
	"github.com/costops/fleetbook/pkg/logging"
	"github.com/costops/fleetbook/pkg/reconcile"
	"github.com/costops/fleetbook/pkg/roster"
)

// AppContext defines the interface the run command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	Defaults() globals.Defaults
}

// NewCommand creates the run command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	defaults := app.Defaults()

	var (
		fleetPath   string
		hrPath      string
		invoicePath string
		outDir      string
		threshold   int
		excludePool bool
		encoding    string
		separator   string
		metaRows    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile and export in one pass",
		Long: `Run performs the full monthly pass: reconcile the fleet export
against the HR roster, write the three review files, then annotate the
invoice with the just-refreshed mapping and write the booking export.

The export stage stays all-or-nothing: any invoice plate missing from
the refreshed mapping blocks the booking file and exits non-zero.`,
		Example: `  fleetbook run --fleet fleet.xlsx --hr roster.xlsx --invoice invoice.csv`,
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
			if _, err := result.WriteOutputs(outDir); err != nil {
				return err
			}
			logger.Info().Str("dir", outDir).Msg(result.Summary())

			// An explicit 0 means the detail lines start right after
			// the header
			if metaRows == 0 {
				metaRows = invoice.MetaRowsNone
			}

			f, err := invoice.ReadFile(ctx, invoicePath, invoice.Options{
				Encoding:  encoding,
				Separator: separator,
				MetaRows:  metaRows,
			})
			if err != nil {
				return err
			}

			// No file hand-off between the stages, the mapping comes
			// straight from the reconciliation result
			mapping := booking.MappingFromRows(result.Mapping)
			batch := booking.Annotate(ctx, f.Lines, mapping)

			if !batch.Resolved() {
				missingPath := filepath.Join(outDir, "missing_costcenters.xlsx")
				if err := batch.WriteMissing(missingPath); err != nil {
					return err
				}
				return errors.NewUnresolvedError(batch.Missing, missingPath)
			}

			outPath := filepath.Join(outDir, "invoice_booking_export.csv")
			if err := booking.ExportBookingFile(outPath, batch, f.Meta, booking.ExportOptions{
				Encoding:  encoding,
				Separator: separator,
			}); err != nil {
				return err
			}

			logger.Info().
				Int("lines", len(batch.Lines)).
				Str("file", outPath).
				Msg("Booking export written")

			flags := globals.Parse(cmd)
			if flags.Quiet {
				return nil
			}

			return output.FormatAny(output.ExportSummary{
				InvoiceLines: len(f.Lines),
				Resolved:     len(batch.Lines),
				Total:        batch.Total(),
				OutputFile:   outPath,
			}, flags)
		},
	}

	cmd.Flags().StringVar(&fleetPath, "fleet", "", "fleet export .xlsx (required)")
	cmd.Flags().StringVar(&hrPath, "hr", "", "HR roster .xlsx (required)")
	cmd.Flags().StringVar(&invoicePath, "invoice", "", "invoice detail CSV (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", defaults.OutputDir, "directory for all output files")
	cmd.Flags().IntVar(&threshold, "threshold", defaults.MatchThreshold, "minimum fuzzy match score (1-100)")
	cmd.Flags().BoolVar(&excludePool, "exclude-pool", defaults.ExcludePool, "skip pool vehicles in the missing-in-HR view")
	cmd.Flags().StringVar(&encoding, "encoding", defaults.InvoiceEncoding, "invoice and export encoding")
	cmd.Flags().StringVar(&separator, "sep", defaults.InvoiceSeparator, "CSV field separator")
	cmd.Flags().IntVar(&metaRows, "meta-rows", defaults.InvoiceMetaRows, "invoice-level rows between header and detail lines")

	_ = cmd.MarkFlagRequired("fleet")
	_ = cmd.MarkFlagRequired("hr")
	_ = cmd.MarkFlagRequired("invoice")

	return cmd
}
