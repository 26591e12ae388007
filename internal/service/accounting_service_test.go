package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type fakeInvoiceRepo struct {
	items map[string]model.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{items: map[string]model.Invoice{}}
}

func (r *fakeInvoiceRepo) Insert(_ context.Context, i *model.Invoice) error {
	r.items[i.ID] = *i
	return nil
}

func (r *fakeInvoiceRepo) Get(_ context.Context, id string) (*model.Invoice, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakeInvoiceRepo) Save(_ context.Context, i *model.Invoice) error {
	if _, ok := r.items[i.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[i.ID] = *i
	return nil
}

func (r *fakeInvoiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context) ([]model.Invoice, error) {
	result := make([]model.Invoice, 0, len(r.items))
	for _, i := range r.items {
		result = append(result, i)
	}
	return result, nil
}

func (r *fakeInvoiceRepo) ListByPeriodDesc(ctx context.Context) ([]model.Invoice, error) {
	result, _ := r.List(ctx)
	sort.Slice(result, func(a, b int) bool { return result[a].Period > result[b].Period })
	return result, nil
}

type fixedCounter struct {
	completed int64
}

func (c fixedCounter) CountByStatus(_ context.Context, _ model.InterventionStatus) (int64, error) {
	return c.completed, nil
}

func newTestAccountingService(completed int64) (*AccountingService, *fakeInvoiceRepo) {
	repo := newFakeInvoiceRepo()
	return NewAccountingService(repo, fixedCounter{completed: completed}), repo
}

func TestCreateInvoiceDefaultsToWaiting(t *testing.T) {
	svc, _ := newTestAccountingService(0)

	created, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Period: "2026-03",
		Amount: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusWaiting, created.Status)
	assert.NotEmpty(t, created.ID)
}

func TestCreateInvoiceRejectsBadPeriodAndStatus(t *testing.T) {
	svc, _ := newTestAccountingService(0)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Period: "2026-13", Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceInput{Period: "mars 2026", Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Period: "2026-03", Amount: 100, Status: "Annulé",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateInvoiceStatusSetsUploadDateWithAttachment(t *testing.T) {
	svc, _ := newTestAccountingService(0)

	created, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Period: "2026-03", Amount: 100})
	require.NoError(t, err)

	updated, err := svc.UpdateInvoiceStatus(context.Background(), created.ID, model.InvoiceStatusSent, "facture-2026-03.pdf")
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusSent, updated.Status)
	assert.Equal(t, "facture-2026-03.pdf", updated.Attachment)
	assert.NotEmpty(t, updated.UploadDate)

	_, err = svc.UpdateInvoiceStatus(context.Background(), "missing", model.InvoiceStatusPaid, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecoveryRate(t *testing.T) {
	assert.Equal(t, float64(0), RecoveryRate(nil))

	invoices := []model.Invoice{
		{Status: model.InvoiceStatusPaid},
		{Status: model.InvoiceStatusWaiting},
		{Status: model.InvoiceStatusPaid},
		{Status: model.InvoiceStatusSent},
	}
	assert.Equal(t, float64(50), RecoveryRate(invoices))

	third := []model.Invoice{
		{Status: model.InvoiceStatusPaid},
		{Status: model.InvoiceStatusWaiting},
		{Status: model.InvoiceStatusWaiting},
	}
	assert.Equal(t, 33.33, RecoveryRate(third))
}

func TestStatsComparesLatestTwoPeriods(t *testing.T) {
	svc, _ := newTestAccountingService(7)

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Period: "2026-02", Amount: 1000, Status: model.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Period: "2026-03", Amount: 1250,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1250), stats.MonthlyRevenue)
	assert.Equal(t, float64(25), stats.MonthlyGrowth)
	assert.Equal(t, 1, stats.PendingInvoices)
	assert.Equal(t, 7, stats.PaidInterventions)
	assert.Equal(t, float64(50), stats.RecoveryRate)
}

func TestStatsOnEmptyLedger(t *testing.T) {
	svc, _ := newTestAccountingService(0)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(0), stats.MonthlyRevenue)
	assert.Equal(t, float64(0), stats.MonthlyGrowth)
	assert.Equal(t, float64(0), stats.RecoveryRate)
}
