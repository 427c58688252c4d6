package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstsuite/internal/domain"
	"gstsuite/internal/period"
	"gstsuite/internal/port"
)

// Statutory late-fee schedule: a flat per-day fee capped at a ceiling.
var (
	gstr3bLateFeePerDay = decimal.NewFromInt(50)
	gstr4LateFeePerDay  = decimal.NewFromInt(200)
	lateFeeCap          = decimal.NewFromInt(5000)
)

// ReturnService generates the statutory return forms from live invoice data.
type ReturnService interface {
	GenerateGSTR1(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr1Report, error)
	GenerateGSTR3B(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr3bReport, error)
	GenerateGSTR4(ctx context.Context, businessID uuid.UUID, periodToken, authToken string) (*domain.Gstr4Report, error)
}

type returnService struct {
	invoices   port.InvoiceStore
	parties    port.PartyStore
	businesses port.BusinessStore
	cache      port.ReportCacheRepository
	freshness  time.Duration

	now func() time.Time
}

// NewReturnService creates a ReturnService backed by the collaborator stores
// and the report cache.
func NewReturnService(
	invoices port.InvoiceStore,
	parties port.PartyStore,
	businesses port.BusinessStore,
	cache port.ReportCacheRepository,
	freshness time.Duration,
) ReturnService {
	return &returnService{
		invoices:   invoices,
		parties:    parties,
		businesses: businesses,
		cache:      cache,
		freshness:  freshness,
		now:        time.Now,
	}
}

// resolveBusiness fetches the business profile and requires a GSTIN.
func (s *returnService) resolveBusiness(ctx context.Context, businessID uuid.UUID, authToken string) (*domain.BusinessProfile, error) {
	profile, err := s.businesses.GetProfile(ctx, businessID, authToken)
	if err != nil {
		return nil, err
	}
	if profile.GSTIN == "" {
		return nil, domain.Validationf("business %s has no GSTIN configured", businessID)
	}
	return profile, nil
}

// cached returns true and unmarshals the payload into out when a report for
// the key exists and was generated within the freshness window. The cache is
// a correctness-neutral optimization: any cache error means "not cached".
func (s *returnService) cached(ctx context.Context, businessID uuid.UUID, reportType domain.ReportType, periodToken string, out interface{}) bool {
	report, err := s.cache.Get(ctx, businessID, reportType, periodToken)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			log.Printf("returnService.cached: cache read failed: %v", err)
		}
		return false
	}
	if s.now().Sub(report.GeneratedAt) > s.freshness {
		return false
	}
	if err := json.Unmarshal(report.Payload, out); err != nil {
		log.Printf("returnService.cached: stale payload unmarshal failed: %v", err)
		return false
	}
	return true
}

// saveReport upserts the generated payload into the cache. Cache write
// failures are logged and swallowed; they never fail the generation.
func (s *returnService) saveReport(ctx context.Context, businessID uuid.UUID, reportType domain.ReportType, periodToken string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("returnService.saveReport: marshal failed: %v", err)
		return
	}
	report := &domain.GeneratedReport{
		BusinessID:  businessID,
		ReportType:  reportType,
		Period:      periodToken,
		Payload:     raw,
		GeneratedAt: s.now().UTC(),
	}
	if err := s.cache.Upsert(ctx, report); err != nil {
		log.Printf("returnService.saveReport: cache write failed: %v", err)
	}
}

// gstr3bDueDate is the 20th of the month after a monthly period, or the 22nd
// of the month after a quarterly period's end.
func gstr3bDueDate(p *period.Period) time.Time {
	next := p.End.AddDate(0, 0, 1)
	day := 20
	if p.Quarterly {
		day = 22
	}
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.UTC)
}

// gstr4DueDate is the 18th of the month after the quarter.
func gstr4DueDate(p *period.Period) time.Time {
	next := p.End.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), 18, 0, 0, 0, 0, time.UTC)
}

// lateFee computes the flat per-day late fee, capped.
func lateFee(dueDate, now time.Time, perDay decimal.Decimal) decimal.Decimal {
	if !now.After(dueDate) {
		return decimal.Zero
	}
	days := int64(now.Sub(dueDate).Hours() / 24)
	if days <= 0 {
		return decimal.Zero
	}
	fee := perDay.Mul(decimal.NewFromInt(days))
	if fee.GreaterThan(lateFeeCap) {
		return lateFeeCap
	}
	return fee
}

// lateInterest is the statutory interest on late payment. The upstream system
// never finished this formula; it returns 0 until the computation basis is
// confirmed with the tax team.
func lateInterest(dueDate, now time.Time) decimal.Decimal {
	_ = dueDate
	_ = now
	return decimal.Zero
}
