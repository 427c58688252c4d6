// Package export renders generated returns as spreadsheet workbooks in the
// layout of the government portal's offline tool.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstsuite/internal/domain"
)

// Gstr1Workbook writes a GSTR-1 report as an XLSX workbook with one sheet per
// section.
func Gstr1Workbook(report *domain.Gstr1Report, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeB2BSheet(f, "b2b", report.B2B); err != nil {
		return err
	}
	if err := writeInvoiceSheet(f, "b2cl", report.B2CLarge); err != nil {
		return err
	}
	if err := writeB2CSSheet(f, report.B2CSmall); err != nil {
		return err
	}
	if err := writeInvoiceSheet(f, "exp", report.Export); err != nil {
		return err
	}
	if err := writeCDNRSheet(f, report.CDNR); err != nil {
		return err
	}
	if err := writeAdvanceSheet(f, report.Advances); err != nil {
		return err
	}
	if err := writeNilSheet(f, report.NilSummary); err != nil {
		return err
	}
	if err := writeHSNSheet(f, report.HSNSummary); err != nil {
		return err
	}

	// excelize creates a default "Sheet1"; drop it so the workbook opens on b2b.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export.Gstr1Workbook: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.Gstr1Workbook: %w", err)
	}
	return nil
}

func newSheet(f *excelize.File, name string, header []interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("export: creating sheet %s: %w", name, err)
	}
	return setRow(f, name, 1, header)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func writeB2BSheet(f *excelize.File, name string, groups []domain.Gstr1B2BGroup) error {
	header := []interface{}{
		"GSTIN/UIN of Recipient", "Receiver Name", "Invoice Number", "Invoice Date",
		"Invoice Value", "Place Of Supply", "Reverse Charge", "Rate",
		"Taxable Value", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, name, header); err != nil {
		return err
	}
	row := 2
	for _, group := range groups {
		for _, inv := range group.Invoices {
			for _, item := range inv.Items {
				values := []interface{}{
					group.CounterpartyGSTIN, group.CounterpartyName,
					inv.Number, inv.Date, inv.Value, inv.PlaceOfSupply,
					yesNo(inv.ReverseCharge), item.Rate, item.TaxableValue,
					item.IGST, item.CGST, item.SGST, item.Cess,
				}
				if err := setRow(f, name, row, values); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

func writeInvoiceSheet(f *excelize.File, name string, invoices []domain.Gstr1Invoice) error {
	header := []interface{}{
		"Invoice Number", "Invoice Date", "Invoice Value", "Place Of Supply",
		"Rate", "Taxable Value", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, name, header); err != nil {
		return err
	}
	row := 2
	for _, inv := range invoices {
		for _, item := range inv.Items {
			values := []interface{}{
				inv.Number, inv.Date, inv.Value, inv.PlaceOfSupply,
				item.Rate, item.TaxableValue, item.IGST, item.CGST, item.SGST, item.Cess,
			}
			if err := setRow(f, name, row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeB2CSSheet(f *excelize.File, rows []domain.Gstr1B2CSRow) error {
	header := []interface{}{
		"Place Of Supply", "Rate", "Taxable Value", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, "b2cs", header); err != nil {
		return err
	}
	for i, r := range rows {
		values := []interface{}{r.PlaceOfSupply, r.Rate, r.TaxableValue, r.IGST, r.CGST, r.SGST, r.Cess}
		if err := setRow(f, "b2cs", i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeCDNRSheet(f *excelize.File, notes []domain.Gstr1Note) error {
	header := []interface{}{
		"GSTIN/UIN of Recipient", "Note Type", "Note Number", "Note Date",
		"Original Invoice Number", "Original Invoice Date", "Note Value",
		"Rate", "Taxable Value", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, "cdnr", header); err != nil {
		return err
	}
	row := 2
	for _, note := range notes {
		for _, item := range note.Items {
			values := []interface{}{
				note.CounterpartyGSTIN, note.NoteType, note.NoteNumber, note.NoteDate,
				note.OriginalNumber, note.OriginalDate, note.Value,
				item.Rate, item.TaxableValue, item.IGST, item.CGST, item.SGST, item.Cess,
			}
			if err := setRow(f, "cdnr", row, values); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeAdvanceSheet(f *excelize.File, rows []domain.Gstr1AdvanceRow) error {
	header := []interface{}{
		"Place Of Supply", "Rate", "Gross Advance Received", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, "at", header); err != nil {
		return err
	}
	for i, r := range rows {
		values := []interface{}{r.PlaceOfSupply, r.Rate, r.AdvanceAmount, r.IGST, r.CGST, r.SGST, r.Cess}
		if err := setRow(f, "at", i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeNilSheet(f *excelize.File, summary domain.Gstr1NilSummary) error {
	header := []interface{}{"Nil Rated Supplies", "Exempted Supplies", "Non-GST Supplies"}
	if err := newSheet(f, "exemp", header); err != nil {
		return err
	}
	return setRow(f, "exemp", 2, []interface{}{summary.NilRated, summary.Exempted, summary.NonGST})
}

func writeHSNSheet(f *excelize.File, rows []domain.Gstr1HSNRow) error {
	header := []interface{}{
		"HSN", "UQC", "Total Quantity", "Rate", "Taxable Value", "IGST", "CGST", "SGST", "Cess",
	}
	if err := newSheet(f, "hsn", header); err != nil {
		return err
	}
	for i, r := range rows {
		values := []interface{}{r.HSNCode, r.Unit, r.Quantity, r.Rate, r.TaxableValue, r.IGST, r.CGST, r.SGST, r.Cess}
		if err := setRow(f, "hsn", i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
