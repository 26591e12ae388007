package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type ContractRepository struct {
	store[contractRow]
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{store: newStore[contractRow](db)}
}

type contractRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Type      string    `gorm:"column:type"`
	ClientID  string    `gorm:"column:client_id"`
	StartDate string    `gorm:"column:start_date"`
	EndDate   string    `gorm:"column:end_date"`
	Status    string    `gorm:"column:status"`
	Services  string    `gorm:"column:services"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (contractRow) TableName() string { return "contracts" }

func toContractRow(c *model.Contract) contractRow {
	return contractRow{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		ClientID:  c.ClientID,
		StartDate: c.StartDate,
		EndDate:   c.EndDate,
		Status:    string(c.Status),
		Services:  marshalJSON(c.Services),
		CreatedAt: c.CreatedAt,
	}
}

func toContractModel(row contractRow) model.Contract {
	return model.Contract{
		ID:        row.ID,
		Name:      row.Name,
		Type:      model.ContractType(row.Type),
		ClientID:  row.ClientID,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Status:    model.ContractStatus(row.Status),
		Services:  unmarshalJSON(row.Services, []model.Service{}),
		CreatedAt: row.CreatedAt,
	}
}

func (r *ContractRepository) Insert(ctx context.Context, c *model.Contract) error {
	row := toContractRow(c)
	return r.insert(ctx, &row)
}

func (r *ContractRepository) Get(ctx context.Context, id string) (*model.Contract, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	c := toContractModel(*row)
	return &c, nil
}

func (r *ContractRepository) Save(ctx context.Context, c *model.Contract) error {
	row := toContractRow(c)
	return r.save(ctx, &row)
}

func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		result = append(result, toContractModel(row))
	}
	return result, nil
}
