package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type InvoiceRepository interface {
	Insert(ctx context.Context, i *model.Invoice) error
	Get(ctx context.Context, id string) (*model.Invoice, error)
	Save(ctx context.Context, i *model.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Invoice, error)
	ListByPeriodDesc(ctx context.Context) ([]model.Invoice, error)
}

type InterventionCounter interface {
	CountByStatus(ctx context.Context, status model.InterventionStatus) (int64, error)
}

// AccountingService keeps the monthly invoice records and the dashboard
// statistics derived from them.
type AccountingService struct {
	invoices      InvoiceRepository
	interventions InterventionCounter
}

func NewAccountingService(invoices InvoiceRepository, interventions InterventionCounter) *AccountingService {
	return &AccountingService{invoices: invoices, interventions: interventions}
}

type CreateInvoiceInput struct {
	Period             string              `json:"period"`
	Amount             model.Numeric       `json:"amount"`
	Status             model.InvoiceStatus `json:"status"`
	Attachment         string              `json:"attachment"`
	InterventionsCount int                 `json:"interventionsCount"`
}

func (s *AccountingService) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*model.Invoice, error) {
	if !periodPattern.MatchString(input.Period) {
		return nil, fmt.Errorf("%w: period must be formatted YYYY-MM", ErrValidation)
	}
	status := input.Status
	if status == "" {
		status = model.InvoiceStatusWaiting
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", ErrValidation, input.Status)
	}

	invoice := &model.Invoice{
		ID:                 uuid.NewString(),
		Period:             input.Period,
		Amount:             input.Amount,
		Status:             status,
		Attachment:         input.Attachment,
		InterventionsCount: input.InterventionsCount,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.invoices.Insert(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoiceStatus sets any of the three statuses directly; forward
// progression (En attente, Envoyé, Payé) is the normal flow but is not
// enforced here.
func (s *AccountingService) UpdateInvoiceStatus(ctx context.Context, id string, status model.InvoiceStatus, attachment string) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", ErrValidation, status)
	}

	invoice, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	invoice.Status = status
	if attachment != "" {
		invoice.Attachment = attachment
		invoice.UploadDate = time.Now().UTC().Format("2006-01-02")
	}

	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, mapNotFound(err)
	}
	return invoice, nil
}

func (s *AccountingService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.invoices.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *AccountingService) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	return s.invoices.ListByPeriodDesc(ctx)
}

// Stats computes the accounting dashboard block. Revenue and growth compare
// the two most recent periods; growth is 0 when there is no prior period.
func (s *AccountingService) Stats(ctx context.Context) (*model.AccountingStats, error) {
	invoices, err := s.invoices.ListByPeriodDesc(ctx)
	if err != nil {
		return nil, err
	}

	var currentMonth, lastMonth float64
	if len(invoices) > 0 {
		currentMonth = float64(invoices[0].Amount)
	}
	if len(invoices) > 1 {
		lastMonth = float64(invoices[1].Amount)
	}
	var growth float64
	if lastMonth != 0 {
		growth = round2((currentMonth - lastMonth) / lastMonth * 100)
	}

	pending := 0
	for _, invoice := range invoices {
		if invoice.Status == model.InvoiceStatusWaiting {
			pending++
		}
	}

	completed, err := s.interventions.CountByStatus(ctx, model.InterventionCompleted)
	if err != nil {
		return nil, err
	}

	return &model.AccountingStats{
		MonthlyRevenue:    currentMonth,
		MonthlyGrowth:     growth,
		PaidInterventions: int(completed),
		PendingInvoices:   pending,
		RecoveryRate:      RecoveryRate(invoices),
	}, nil
}

// RecoveryRate is the share of paid invoices as a percentage, rounded to two
// decimals, defined as 0 when there are no invoices.
func RecoveryRate(invoices []model.Invoice) float64 {
	if len(invoices) == 0 {
		return 0
	}
	paid := 0
	for _, invoice := range invoices {
		if invoice.Status == model.InvoiceStatusPaid {
			paid++
		}
	}
	return round2(float64(paid) / float64(len(invoices)) * 100)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
