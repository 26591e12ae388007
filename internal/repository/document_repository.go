package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type DocumentRepository struct {
	store[documentRow]
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{store: newStore[documentRow](db)}
}

type documentRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Type       string    `gorm:"column:type"`
	Name       string    `gorm:"column:name"`
	ExpiryDate string    `gorm:"column:expiry_date"`
	File       string    `gorm:"column:file"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (documentRow) TableName() string { return "admin_documents" }

func toDocumentRow(d *model.AdminDocument) documentRow {
	return documentRow{
		ID:         d.ID,
		Type:       d.Type,
		Name:       d.Name,
		ExpiryDate: d.ExpiryDate,
		File:       d.File,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}

func toDocumentModel(row documentRow) model.AdminDocument {
	return model.AdminDocument{
		ID:         row.ID,
		Type:       row.Type,
		Name:       row.Name,
		ExpiryDate: row.ExpiryDate,
		File:       row.File,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
	}
}

func (r *DocumentRepository) Insert(ctx context.Context, d *model.AdminDocument) error {
	row := toDocumentRow(d)
	return r.insert(ctx, &row)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*model.AdminDocument, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d := toDocumentModel(*row)
	return &d, nil
}

func (r *DocumentRepository) Save(ctx context.Context, d *model.AdminDocument) error {
	row := toDocumentRow(d)
	return r.save(ctx, &row)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *DocumentRepository) List(ctx context.Context) ([]model.AdminDocument, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.AdminDocument, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDocumentModel(row))
	}
	return result, nil
}
