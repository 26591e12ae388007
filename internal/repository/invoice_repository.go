package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type InvoiceRepository struct {
	store[invoiceRow]
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{store: newStore[invoiceRow](db), db: db}
}

type invoiceRow struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	Period             string    `gorm:"column:period"`
	Amount             float64   `gorm:"column:amount"`
	Status             string    `gorm:"column:status"`
	UploadDate         string    `gorm:"column:upload_date"`
	Attachment         string    `gorm:"column:attachment"`
	InterventionsCount int       `gorm:"column:interventions_count"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (invoiceRow) TableName() string { return "invoices" }

func toInvoiceRow(i *model.Invoice) invoiceRow {
	return invoiceRow{
		ID:                 i.ID,
		Period:             i.Period,
		Amount:             float64(i.Amount),
		Status:             string(i.Status),
		UploadDate:         i.UploadDate,
		Attachment:         i.Attachment,
		InterventionsCount: i.InterventionsCount,
		CreatedAt:          i.CreatedAt,
	}
}

func toInvoiceModel(row invoiceRow) model.Invoice {
	return model.Invoice{
		ID:                 row.ID,
		Period:             row.Period,
		Amount:             model.Numeric(row.Amount),
		Status:             model.InvoiceStatus(row.Status),
		UploadDate:         row.UploadDate,
		Attachment:         row.Attachment,
		InterventionsCount: row.InterventionsCount,
		CreatedAt:          row.CreatedAt,
	}
}

func (r *InvoiceRepository) Insert(ctx context.Context, i *model.Invoice) error {
	row := toInvoiceRow(i)
	return r.insert(ctx, &row)
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (*model.Invoice, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	i := toInvoiceModel(*row)
	return &i, nil
}

func (r *InvoiceRepository) Save(ctx context.Context, i *model.Invoice) error {
	row := toInvoiceRow(i)
	return r.save(ctx, &row)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *InvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Invoice, 0, len(rows))
	for _, row := range rows {
		result = append(result, toInvoiceModel(row))
	}
	return result, nil
}

// ListByPeriodDesc returns invoices newest period first, the order the
// accounting screen shows them in.
func (r *InvoiceRepository) ListByPeriodDesc(ctx context.Context) ([]model.Invoice, error) {
	var rows []invoiceRow
	if err := r.db.WithContext(ctx).Order("period DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]model.Invoice, 0, len(rows))
	for _, row := range rows {
		result = append(result, toInvoiceModel(row))
	}
	return result, nil
}
