// Package export implements the export command, which annotates a
// vendor invoice with cost centers and writes the booking-ready CSV.
package export

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/costops/fleetbook/internal/cmd/globals"
	"github.com/costops/fleetbook/internal/cmd/output"
	"github.com/costops/fleetbook/pkg/booking"
	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/invoice"
	"github.com/costops/fleetbook/pkg/logging"
)

// AppContext defines the interface the export command needs from the app.
type AppContext interface {
	Logger() *zerolog.Logger
	Defaults() globals.Defaults
}

// NewCommand creates the export command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	defaults := app.Defaults()

	var (
		invoicePath string
		mappingPath string
		outPath     string
		missingPath string
		encoding    string
		separator   string
		metaRows    int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Turn a vendor invoice into a booking-ready export",
		Long: `Export joins the invoice detail lines against the refreshed plate
mapping and writes the booking CSV for the accounting system.

The run is all-or-nothing: if any plate on the invoice has no mapping
entry, no booking file is written. Instead the missing plates are
exported for review and the command exits non-zero.`,
		Example: `  fleetbook export --invoice invoice.csv --mapping outputs/fleet_mapping_refreshed.xlsx
  fleetbook export --invoice invoice.csv --mapping mapping.xlsx --out booking.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())
			logger := app.Logger()

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

			mapping, err := booking.LoadMapping(mappingPath)
			if err != nil {
				return err
			}

			batch := booking.Annotate(ctx, f.Lines, mapping)

			if !batch.Resolved() {
				if err := batch.WriteMissing(missingPath); err != nil {
					return err
				}
				return errors.NewUnresolvedError(batch.Missing, missingPath)
			}

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
				InvoiceLines:  len(f.Lines),
				Resolved:      len(batch.Lines),
				MissingPlates: 0,
				Total:         batch.Total(),
				OutputFile:    outPath,
			}, flags)
		},
	}

	cmd.Flags().StringVar(&invoicePath, "invoice", "", "invoice detail CSV (required)")
	cmd.Flags().StringVar(&mappingPath, "mapping", defaults.OutputDir+"/fleet_mapping_refreshed.xlsx", "plate mapping .xlsx")
	cmd.Flags().StringVar(&outPath, "out", defaults.OutputDir+"/invoice_booking_export.csv", "booking CSV output path")
	cmd.Flags().StringVar(&missingPath, "missing-out", defaults.OutputDir+"/missing_costcenters.xlsx", "diagnostic output for unmapped plates")
	cmd.Flags().StringVar(&encoding, "encoding", defaults.InvoiceEncoding, "invoice and export encoding")
	cmd.Flags().StringVar(&separator, "sep", defaults.InvoiceSeparator, "CSV field separator")
	cmd.Flags().IntVar(&metaRows, "meta-rows", defaults.InvoiceMetaRows, "invoice-level rows between header and detail lines")

	_ = cmd.MarkFlagRequired("invoice")

	return cmd
}
