package booking

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/invoice"
)

// Fixed accounts of the booking template.
const (
	// ContraAccount is the vendor's contra account.
	ContraAccount = "80071244"
	// ExpenseAccount is the vehicle cost account every line books to.
	ExpenseAccount = "4530"
)

// SheetMarker is the first physical line of the export; the accounting
// system uses it to route the file to the right booking sheet.
const SheetMarker = "BearbeitenFibuBuch.BlattDKV"

// exportHeader is the column layout of the booking import.
var exportHeader = []string{
	"Buchungsdatum",
	"Belegdatum",
	"Belegnr.",
	"Gegenkonto",
	"Steuerschlüssel",
	"Kontonr.",
	"Beschreibung",
	"",
	"Betrag",
	"KostenstelleCode",
}

// ExportOptions configures the booking export format.
type ExportOptions struct {
	// Encoding of the output, latin1 by default.
	Encoding string

	// Separator between fields, ";" by default.
	Separator string
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.Encoding == "" {
		o.Encoding = invoice.DefaultEncoding
	}
	if o.Separator == "" {
		o.Separator = invoice.DefaultSeparator
	}
	return o
}

// ExportBooking writes the booking-ready export: the sheet marker, the
// header, one summary row balancing the batch against the contra
// account, then one row per resolved line. Callers must only pass a
// resolved batch; an unresolved one is rejected.
func ExportBooking(w io.Writer, b *Batch, meta invoice.Metadata, opts ExportOptions) error {
	if !b.Resolved() {
		return errors.NewUnresolvedError(b.Missing, "")
	}
	for _, line := range b.Lines {
		if strings.TrimSpace(line.CostCenter) == "" {
			return errors.NewUnresolvedError([]string{line.Plate}, "")
		}
	}
	opts = opts.withDefaults()

	enc, err := encoderFor(opts.Encoding)
	if err != nil {
		return err
	}
	out := transform.NewWriter(w, enc)

	if _, err := io.WriteString(out, SheetMarker+"\n"); err != nil {
		return errors.WrapIO("write", "", err)
	}

	cw := csv.NewWriter(out)
	cw.Comma = []rune(opts.Separator)[0]

	if err := cw.Write(exportHeader); err != nil {
		return errors.WrapIO("write", "", err)
	}

	date := meta.DateString()

	// Summary row: the whole invoice against the contra account, sign
	// flipped so the batch balances to zero.
	if err := cw.Write([]string{
		date,
		date,
		meta.DocumentNo,
		ContraAccount,
		"",
		"",
		strings.TrimSpace("Fleet invoice " + date),
		"",
		invoice.FormatAmount(-b.Total()),
		"",
	}); err != nil {
		return errors.WrapIO("write", "", err)
	}

	for _, line := range b.Lines {
		if err := cw.Write([]string{
			date,
			date,
			meta.DocumentNo,
			ContraAccount,
			fmt.Sprintf("%d", line.TaxCode),
			ExpenseAccount,
			line.Plate,
			"",
			invoice.FormatAmount(line.Gross),
			line.CostCenter,
		}); err != nil {
			return errors.WrapIO("write", "", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return out.Close()
}

// ExportBookingFile writes the booking export to path, creating parent
// directories as needed.
func ExportBookingFile(path string, b *Batch, meta invoice.Metadata, opts ExportOptions) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := ExportBooking(f, b, meta, opts); err != nil {
		return err
	}
	return f.Close()
}

// encoderFor maps an encoding name to its encoder.
func encoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(name) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewEncoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewEncoder(), nil
	case "utf-8", "utf8":
		return encoding.Nop.NewEncoder(), nil
	default:
		return nil, &errors.ValidationError{Field: "encoding", Value: name, Message: "unsupported encoding"}
	}
}
