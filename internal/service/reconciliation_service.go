package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
	"gstsuite/internal/period"
	"gstsuite/internal/port"
	"gstsuite/internal/tax"
)

// AmountTolerance is the absolute rupee tolerance for amount comparison: a
// difference of exactly 0.01 is within tolerance, 0.02 is not.
var AmountTolerance = decimal.NewFromFloat(0.01)

// ReconciliationResult is the categorized view of one period's reconciliation.
// The four categories are mutually exclusive; Extra is derived at read time
// from internal purchases unclaimed by any statement line.
type ReconciliationResult struct {
	Import     *domain.Gstr2aImport          `json:"import"`
	Matched    []domain.ReconciliationRecord `json:"matched"`
	Missing    []domain.ReconciliationRecord `json:"missing"`
	Mismatched []domain.ReconciliationRecord `json:"mismatched"`
	Extra      []domain.Invoice              `json:"extra"`
}

// ReconciliationService imports GSTR-2A/2B statements and matches them
// against internal purchase invoices.
type ReconciliationService interface {
	ImportStatement(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType, raw json.RawMessage, userID uuid.UUID, authToken string) (*domain.Gstr2aImport, error)
	GetReconciliation(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*ReconciliationResult, error)
	ManualMatch(ctx context.Context, businessID, recordID, invoiceID uuid.UUID, authToken string) (*domain.ReconciliationRecord, error)
}

type reconciliationService struct {
	imports  port.Gstr2aImportRepository
	records  port.ReconciliationRepository
	invoices port.InvoiceStore
	archive  port.ObjectStorage
	bucket   string
}

// NewReconciliationService creates a ReconciliationService. archive may be
// nil (or bucket empty) to disable raw-statement archival.
func NewReconciliationService(
	imports port.Gstr2aImportRepository,
	records port.ReconciliationRepository,
	invoices port.InvoiceStore,
	archive port.ObjectStorage,
	bucket string,
) ReconciliationService {
	return &reconciliationService{
		imports:  imports,
		records:  records,
		invoices: invoices,
		archive:  archive,
		bucket:   bucket,
	}
}

// statement mirrors the government statement JSON: b2b and/or cdnr sections
// of supplier blocks, each carrying reported invoice lines.
type statement struct {
	B2B  []statementSupplier `json:"b2b"`
	CDNR []statementSupplier `json:"cdnr"`
}

type statementSupplier struct {
	CTIN     string             `json:"ctin"`
	Name     string             `json:"name"`
	Invoices []statementInvoice `json:"inv"`
}

type statementInvoice struct {
	Number string          `json:"inum"`
	Date   string          `json:"idt"`
	Value  decimal.Decimal `json:"val"`
	Items  []struct {
		Detail struct {
			TaxableValue decimal.Decimal `json:"txval"`
			IGST         decimal.Decimal `json:"iamt"`
			CGST         decimal.Decimal `json:"camt"`
			SGST         decimal.Decimal `json:"samt"`
			Cess         decimal.Decimal `json:"csamt"`
		} `json:"itm_det"`
	} `json:"itms"`
}

func (s *reconciliationService) ImportStatement(ctx context.Context, businessID uuid.UUID, periodToken string, importType domain.ImportType, raw json.RawMessage, userID uuid.UUID, authToken string) (*domain.Gstr2aImport, error) {
	p, err := period.Parse(periodToken)
	if err != nil {
		return nil, err
	}
	if importType != domain.ImportGSTR2A && importType != domain.ImportGSTR2B {
		return nil, domain.Validationf("unknown import type %q", importType)
	}

	var stmt statement
	if err := json.Unmarshal(raw, &stmt); err != nil {
		return nil, domain.Validationf("statement payload is not valid JSON: %v", err)
	}
	if len(stmt.B2B) == 0 && len(stmt.CDNR) == 0 {
		return nil, domain.Validationf("statement payload has no b2b or cdnr section")
	}

	lines := flattenStatement(&stmt)

	imp := &domain.Gstr2aImport{
		BusinessID: businessID,
		Period:     p.Token,
		ImportType: importType,
		RawPayload: raw,
		ImportedBy: userID,
	}
	s.archiveStatement(ctx, imp, raw)
	if err := s.imports.Upsert(ctx, imp); err != nil {
		return nil, err
	}

	purchases, err := s.invoices.ListByDateRange(ctx, businessID, p.Start, p.End, authToken)
	if err != nil {
		return nil, err
	}
	purchases = tax.FilterByType(purchases, domain.InvoiceTypePurchase)

	records := matchLines(imp, lines, purchases)
	if err := s.records.ReplaceForImport(ctx, imp.ID, records); err != nil {
		return nil, err
	}

	imp.TotalCount = len(records)
	imp.MatchedCount, imp.MissingCount, imp.MismatchedCount = countByStatus(records)
	if err := s.imports.UpdateCounts(ctx, imp); err != nil {
		return nil, err
	}
	return imp, nil
}

// archiveStatement uploads the raw payload to the archive bucket when one is
// configured. Archival failure is logged, never fatal.
func (s *reconciliationService) archiveStatement(ctx context.Context, imp *domain.Gstr2aImport, raw []byte) {
	if s.archive == nil || s.bucket == "" {
		return
	}
	key := fmt.Sprintf("statements/%s/%s-%s.json", imp.BusinessID, imp.Period, imp.ImportType)
	_, err := s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(raw),
		ContentType: "application/json",
	})
	if err != nil {
		log.Printf("reconciliationService.archiveStatement: upload failed: %v", err)
		return
	}
	imp.ArchiveKey = key
}

// flattenStatement extracts one line per reported invoice across both
// sections.
func flattenStatement(stmt *statement) []domain.ReconciliationRecord {
	var lines []domain.ReconciliationRecord
	for _, section := range [][]statementSupplier{stmt.B2B, stmt.CDNR} {
		for _, supplier := range section {
			for _, inv := range supplier.Invoices {
				line := domain.ReconciliationRecord{
					SupplierGSTIN: supplier.CTIN,
					SupplierName:  supplier.Name,
					InvoiceNumber: inv.Number,
					InvoiceDate:   inv.Date,
					Total:         inv.Value,
				}
				for _, item := range inv.Items {
					line.TaxableValue = line.TaxableValue.Add(item.Detail.TaxableValue)
					line.IGST = line.IGST.Add(item.Detail.IGST)
					line.CGST = line.CGST.Add(item.Detail.CGST)
					line.SGST = line.SGST.Add(item.Detail.SGST)
					line.Cess = line.Cess.Add(item.Detail.Cess)
				}
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// matchLines classifies each statement line against the internal purchase
// invoices, keyed by (supplier GSTIN, invoice number).
func matchLines(imp *domain.Gstr2aImport, lines []domain.ReconciliationRecord, purchases []domain.Invoice) []domain.ReconciliationRecord {
	type key struct {
		gstin  string
		number string
	}
	byKey := map[key]*domain.Invoice{}
	for i := range purchases {
		inv := &purchases[i]
		byKey[key{gstin: inv.PartyGSTIN, number: inv.Number}] = inv
	}

	records := make([]domain.ReconciliationRecord, 0, len(lines))
	for _, line := range lines {
		line.ImportID = imp.ID
		line.BusinessID = imp.BusinessID
		line.Period = imp.Period

		inv, ok := byKey[key{gstin: line.SupplierGSTIN, number: line.InvoiceNumber}]
		if !ok {
			line.MatchStatus = domain.MatchMissing
			line.MatchDetail = "not found in purchase records"
			records = append(records, line)
			continue
		}

		line.InvoiceID = &inv.ID
		delta := line.Total.Sub(inv.Total).Abs()
		if delta.LessThanOrEqual(AmountTolerance) {
			line.MatchStatus = domain.MatchMatched
		} else {
			line.MatchStatus = domain.MatchMismatched
			line.MatchDetail = fmt.Sprintf("amount mismatch: statement %s vs invoice %s (delta %s)",
				line.Total.StringFixed(2), inv.Total.StringFixed(2), delta.StringFixed(2))
		}
		records = append(records, line)
	}
	return records
}

func countByStatus(records []domain.ReconciliationRecord) (matched, missing, mismatched int) {
	for _, rec := range records {
		switch rec.MatchStatus {
		case domain.MatchMatched:
			matched++
		case domain.MatchMissing:
			missing++
		case domain.MatchMismatched:
			mismatched++
		}
	}
	return matched, missing, mismatched
}

// GetReconciliation returns the categorized reconciliation for the latest
// import of the period. Extra invoices are re-derived against live purchase
// data rather than trusting stored counts.
func (s *reconciliationService) GetReconciliation(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*ReconciliationResult, error) {
	p, err := period.Parse(periodToken)
	if err != nil {
		return nil, err
	}
	imp, err := s.imports.GetLatest(ctx, businessID, p.Token)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListByImport(ctx, imp.ID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{Import: imp}
	claimed := map[uuid.UUID]bool{}
	for _, rec := range records {
		if rec.InvoiceID != nil {
			claimed[*rec.InvoiceID] = true
		}
		switch rec.MatchStatus {
		case domain.MatchMatched:
			result.Matched = append(result.Matched, rec)
		case domain.MatchMissing:
			result.Missing = append(result.Missing, rec)
		case domain.MatchMismatched:
			result.Mismatched = append(result.Mismatched, rec)
		}
	}

	purchases, err := s.invoices.ListByDateRange(ctx, businessID, p.Start, p.End, authToken)
	if err != nil {
		return nil, err
	}
	for _, inv := range tax.FilterByType(purchases, domain.InvoiceTypePurchase) {
		if !claimed[inv.ID] {
			result.Extra = append(result.Extra, inv)
		}
	}
	return result, nil
}

// ManualMatch links a reconciliation record to a chosen invoice, re-validating
// the amount tolerance. The row is updated in place with is_manual_match set;
// it is never deleted, so the original automatic attempt stays auditable.
func (s *reconciliationService) ManualMatch(ctx context.Context, businessID, recordID, invoiceID uuid.UUID, authToken string) (*domain.ReconciliationRecord, error) {
	rec, err := s.records.GetByID(ctx, businessID, recordID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoices.GetByID(ctx, businessID, invoiceID, authToken)
	if err != nil {
		return nil, err
	}
	if inv.Type != domain.InvoiceTypePurchase {
		return nil, domain.Validationf("invoice %s is not a purchase invoice", invoiceID)
	}

	delta := rec.Total.Sub(inv.Total).Abs()
	rec.InvoiceID = &inv.ID
	rec.IsManualMatch = true
	if delta.LessThanOrEqual(AmountTolerance) {
		rec.MatchStatus = domain.MatchMatched
	} else {
		rec.MatchStatus = domain.MatchMismatched
		rec.MatchDetail = fmt.Sprintf("manual match with amount mismatch: statement %s vs invoice %s (delta %s)",
			rec.Total.StringFixed(2), inv.Total.StringFixed(2), delta.StringFixed(2))
	}
	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
