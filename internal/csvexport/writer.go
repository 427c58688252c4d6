// Package csvexport renders reconciliation results as CSV for download.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"gstsuite/internal/domain"
	"gstsuite/internal/tax"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Category",
	"Supplier GSTIN",
	"Supplier Name",
	"Invoice Number",
	"Invoice Date",
	"Taxable Value",
	"IGST",
	"CGST",
	"SGST",
	"Cess",
	"Total",
	"Linked Invoice ID",
	"Manual Match",
	"Detail",
}

// Writer wraps csv.Writer for exporting reconciliation results.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords writes one row per reconciliation record.
func (w *Writer) WriteRecords(records []domain.ReconciliationRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteExtra writes one row per internal purchase invoice unclaimed by the
// statement. Supplier columns come from the invoice's counterparty fields.
func (w *Writer) WriteExtra(invoices []domain.Invoice) error {
	for i := range invoices {
		inv := &invoices[i]
		totals := tax.ItemTotals(inv.Items)
		row := []string{
			"extra",
			inv.PartyGSTIN,
			inv.PartyName,
			inv.Number,
			inv.Date.Format("02-01-2006"),
			totals.Taxable.StringFixed(2),
			totals.IGST.StringFixed(2),
			totals.CGST.StringFixed(2),
			totals.SGST.StringFixed(2),
			totals.Cess.StringFixed(2),
			inv.Total.StringFixed(2),
			inv.ID.String(),
			"",
			"not reported in statement",
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func recordToRow(rec *domain.ReconciliationRecord) []string {
	row := []string{
		string(rec.MatchStatus),
		rec.SupplierGSTIN,
		rec.SupplierName,
		rec.InvoiceNumber,
		rec.InvoiceDate,
		rec.TaxableValue.StringFixed(2),
		rec.IGST.StringFixed(2),
		rec.CGST.StringFixed(2),
		rec.SGST.StringFixed(2),
		rec.Cess.StringFixed(2),
		rec.Total.StringFixed(2),
		"",
		formatBool(rec.IsManualMatch),
		rec.MatchDetail,
	}
	if rec.InvoiceID != nil {
		row[11] = rec.InvoiceID.String()
	}
	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a period token for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: reconciliation_{period}_{YYYY-MM-DD}.csv
func BuildFilename(periodToken string) string {
	sanitized := SanitizeFilename(periodToken)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("reconciliation_%s_%s.csv", sanitized, date)
}
