package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type ClientRepository struct {
	store[clientRow]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{store: newStore[clientRow](db)}
}

type clientRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name"`
	Company    string    `gorm:"column:company"`
	Email      string    `gorm:"column:email"`
	Phone      string    `gorm:"column:phone"`
	Address    string    `gorm:"column:address"`
	City       string    `gorm:"column:city"`
	PostalCode string    `gorm:"column:postal_code"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (clientRow) TableName() string { return "clients" }

func toClientRow(c *model.Client) clientRow {
	return clientRow{
		ID:         c.ID,
		Name:       c.Name,
		Company:    c.Company,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		CreatedAt:  c.CreatedAt,
	}
}

func toClientModel(row clientRow) model.Client {
	return model.Client{
		ID:         row.ID,
		Name:       row.Name,
		Company:    row.Company,
		Email:      row.Email,
		Phone:      row.Phone,
		Address:    row.Address,
		City:       row.City,
		PostalCode: row.PostalCode,
		CreatedAt:  row.CreatedAt,
	}
}

func (r *ClientRepository) Insert(ctx context.Context, c *model.Client) error {
	row := toClientRow(c)
	return r.insert(ctx, &row)
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*model.Client, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c := toClientModel(*row)
	return &c, nil
}

func (r *ClientRepository) Save(ctx context.Context, c *model.Client) error {
	row := toClientRow(c)
	return r.save(ctx, &row)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Client, 0, len(rows))
	for _, row := range rows {
		result = append(result, toClientModel(row))
	}
	return result, nil
}
