package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type PriceRepository struct {
	store[priceRow]
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{store: newStore[priceRow](db)}
}

type priceRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ClientID     string    `gorm:"column:client_id"`
	ClientName   string    `gorm:"column:client_name"`
	ContractID   string    `gorm:"column:contract_id"`
	ContractName string    `gorm:"column:contract_name"`
	ServiceType  string    `gorm:"column:service_type"`
	Description  string    `gorm:"column:description"`
	BuyPrice     float64   `gorm:"column:buy_price"`
	SellPrice    float64   `gorm:"column:sell_price"`
	Unit         string    `gorm:"column:unit"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (priceRow) TableName() string { return "prices" }

func toPriceRow(p *model.Price) priceRow {
	return priceRow{
		ID:           p.ID,
		ClientID:     p.ClientID,
		ClientName:   p.ClientName,
		ContractID:   p.ContractID,
		ContractName: p.ContractName,
		ServiceType:  p.ServiceType,
		Description:  p.Description,
		BuyPrice:     float64(p.BuyPrice),
		SellPrice:    float64(p.SellPrice),
		Unit:         string(p.Unit),
		CreatedAt:    p.CreatedAt,
	}
}

func toPriceModel(row priceRow) model.Price {
	return model.Price{
		ID:           row.ID,
		ClientID:     row.ClientID,
		ClientName:   row.ClientName,
		ContractID:   row.ContractID,
		ContractName: row.ContractName,
		ServiceType:  row.ServiceType,
		Description:  row.Description,
		BuyPrice:     model.Numeric(row.BuyPrice),
		SellPrice:    model.Numeric(row.SellPrice),
		Unit:         model.ServiceUnit(row.Unit),
		CreatedAt:    row.CreatedAt,
	}
}

func (r *PriceRepository) Insert(ctx context.Context, p *model.Price) error {
	row := toPriceRow(p)
	return r.insert(ctx, &row)
}

func (r *PriceRepository) Get(ctx context.Context, id string) (*model.Price, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := toPriceModel(*row)
	return &p, nil
}

func (r *PriceRepository) Save(ctx context.Context, p *model.Price) error {
	row := toPriceRow(p)
	return r.save(ctx, &row)
}

func (r *PriceRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *PriceRepository) List(ctx context.Context) ([]model.Price, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Price, 0, len(rows))
	for _, row := range rows {
		result = append(result, toPriceModel(row))
	}
	return result, nil
}
