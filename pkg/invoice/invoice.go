// Package invoice reads vendor fuel-card invoice exports. The exports
// are semicolon-separated, Latin-1 encoded CSVs with a handful of
// invoice-level metadata rows between the header and the per-vehicle
// detail lines.
package invoice

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/costops/fleetbook/pkg/errors"
	"github.com/costops/fleetbook/pkg/fleet"
	"github.com/costops/fleetbook/pkg/logging"
)

// Defaults for vendor exports.
const (
	DefaultEncoding  = "latin1"
	DefaultSeparator = ";"
	DefaultMetaRows  = 4

	// MetaRowsNone marks an invoice whose detail lines start right
	// after the header. The zero value means "unset" and falls back to
	// DefaultMetaRows.
	MetaRowsNone = -1
)

// Tax codes of the accounting system.
const (
	TaxCodeStandard = 9  // 19% VAT
	TaxCodeOther    = 50 // everything else
)

// Well-known invoice columns. Exports vary slightly between vendor
// portal versions, so lookup falls back to substring matching.
const (
	ColPlate = "Kennzeichen"
	ColGross = "Wert incl. USt.1"
	ColVAT   = "USt"
)

// Options configures invoice parsing.
type Options struct {
	// Encoding of the file: latin1 (default), windows-1252, utf-8.
	Encoding string

	// Separator between fields, ";" by default.
	Separator string

	// MetaRows is the number of invoice-level rows between the header
	// and the first detail line. Zero means unset; use MetaRowsNone
	// for an invoice without any metadata rows.
	MetaRows int
}

func (o Options) withDefaults() Options {
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	if o.MetaRows == 0 {
		o.MetaRows = DefaultMetaRows
	}
	if o.MetaRows < 0 {
		o.MetaRows = 0
	}
	return o
}

// Line is one allocatable invoice detail line.
type Line struct {
	RawPlate string
	Plate    string // normalized, join key against the fleet mapping
	Gross    float64
	VATRate  string
	TaxCode  int

	// Fields holds every original column by header name, so callers
	// can reach vendor columns this package does not model.
	Fields map[string]string
}

// Metadata is invoice-level information recovered from the rows above
// the detail area. Both fields are best-effort: a missing date or
// document number never blocks the export.
type Metadata struct {
	InvoiceDate time.Time
	HasDate     bool
	DocumentNo  string // "YY/digits" when the date is known
}

// DateString renders the invoice date for the accounting import, or
// "" when no date was found.
func (m Metadata) DateString() string {
	if !m.HasDate {
		return ""
	}
	return m.InvoiceDate.Format("02.01.2006")
}

// File is one parsed vendor invoice.
type File struct {
	Path  string
	Lines []Line
	Meta  Metadata
}

// ReadFile parses a vendor invoice CSV. Detail lines without a license
// plate are dropped (they cannot be allocated to a cost center);
// everything else is kept in file order.
func ReadFile(ctx context.Context, path string, opts Options) (*File, error) {
	opts = opts.withDefaults()
	logger := logging.FromContext(ctx)

	records, err := readCSV(path, opts)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewParseError("csv", path, "file is empty", nil)
	}

	header := records[0]
	plateCol, err := findColumn(path, header, ColPlate, "kennzeichen")
	if err != nil {
		return nil, err
	}
	grossCol, err := findColumn(path, header, ColGross, "wert")
	if err != nil {
		return nil, err
	}
	vatCol, err := findColumn(path, header, ColVAT, "ust")
	if err != nil {
		return nil, err
	}

	metaEnd := 1 + opts.MetaRows
	if metaEnd > len(records) {
		metaEnd = len(records)
	}

	f := &File{
		Path: path,
		Meta: extractMetadata(header, records[1:metaEnd]),
	}

	for _, rec := range records[metaEnd:] {
		plate := fleet.NormalizePlate(field(rec, plateCol))
		if plate == "" {
			continue
		}

		gross, err := ParseAmount(field(rec, grossCol))
		if err != nil {
			logger.Warn().
				Str("file", path).
				Str("plate", plate).
				Str("value", field(rec, grossCol)).
				Msg("Unparsable gross amount, using 0")
			gross = 0
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if name := strings.TrimSpace(col); name != "" {
				fields[name] = field(rec, i)
			}
		}

		vat := field(rec, vatCol)
		f.Lines = append(f.Lines, Line{
			RawPlate: field(rec, plateCol),
			Plate:    plate,
			Gross:    gross,
			VATRate:  vat,
			TaxCode:  taxCode(vat),
			Fields:   fields,
		})
	}

	logger.Debug().
		Str("file", path).
		Int("lines", len(f.Lines)).
		Str("document_no", f.Meta.DocumentNo).
		Msg("Parsed invoice export")

	return f, nil
}

// taxCode maps the VAT column to the accounting tax code.
func taxCode(vatRate string) int {
	if strings.TrimSpace(vatRate) == "19%" {
		return TaxCodeStandard
	}
	return TaxCodeOther
}

// readCSV decodes and parses the whole file.
func readCSV(path string, opts Options) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer file.Close()

	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(transform.NewReader(file, dec))
	r.Comma = []rune(opts.Separator)[0]
	r.FieldsPerRecord = -1 // meta rows are ragged
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return records, nil
}

// decoderFor maps an encoding name to its decoder.
func decoderFor(name string) (transform.Transformer, error) {
	switch strings.ToLower(name) {
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "utf-8", "utf8":
		return encoding.Nop.NewDecoder(), nil
	default:
		return nil, &errors.ValidationError{Field: "encoding", Value: name, Message: "unsupported encoding"}
	}
}

// field returns the trimmed cell at index i, tolerating short rows.
func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// findColumn locates a column by exact name first, then by
// case-insensitive substring.
func findColumn(path string, header []string, exact, contains string) (int, error) {
	for i, col := range header {
		if strings.TrimSpace(col) == exact {
			return i, nil
		}
	}
	for i, col := range header {
		if strings.Contains(strings.ToLower(col), contains) {
			return i, nil
		}
	}
	return -1, errors.NewColumnError(path, "INVOICE", []string{exact}, header)
}

// extractMetadata pulls the invoice date and document number out of
// the metadata rows above the detail area.
func extractMetadata(header []string, metaRows [][]string) Metadata {
	var meta Metadata

	// The invoice date sits in the second cell of the first meta row.
	if len(metaRows) > 0 {
		if t, ok := parseDayFirst(field(metaRows[0], 1)); ok {
			meta.InvoiceDate = t
			meta.HasDate = true
		}
	}

	// The document number derives from the first value in a column
	// whose name contains "rechnung".
	rechnungCol := -1
	for i, col := range header {
		if strings.Contains(strings.ToLower(col), "rechnung") {
			rechnungCol = i
			break
		}
	}
	if rechnungCol >= 0 {
		for _, row := range metaRows {
			if v := field(row, rechnungCol); v != "" {
				meta.DocumentNo = documentNo(v, meta)
				break
			}
		}
	}

	return meta
}

// documentNo builds the booking document number: up to nine digits of
// the invoice number, prefixed with the two-digit year when known.
func documentNo(invoiceNo string, meta Metadata) string {
	var digits strings.Builder
	for _, ch := range invoiceNo {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
			if digits.Len() == 9 {
				break
			}
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	if meta.HasDate {
		return meta.InvoiceDate.Format("06") + "/" + digits.String()
	}
	return digits.String()
}

// parseDayFirst parses the day-first date formats seen in vendor
// exports.
func parseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		"02.01.2006",
		"2.1.2006",
		"02.01.06",
		"02/01/2006",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
