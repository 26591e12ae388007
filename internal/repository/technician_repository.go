package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type TechnicianRepository struct {
	store[technicianRow]
}

func NewTechnicianRepository(db *gorm.DB) *TechnicianRepository {
	return &TechnicianRepository{store: newStore[technicianRow](db)}
}

type technicianRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (technicianRow) TableName() string { return "technicians" }

func toTechnicianRow(t *model.Technician) technicianRow {
	return technicianRow{
		ID:        t.ID,
		Name:      t.Name,
		Email:     t.Email,
		Phone:     t.Phone,
		Role:      t.Role,
		CreatedAt: t.CreatedAt,
	}
}

func toTechnicianModel(row technicianRow) model.Technician {
	return model.Technician{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
	}
}

func (r *TechnicianRepository) Insert(ctx context.Context, t *model.Technician) error {
	row := toTechnicianRow(t)
	return r.insert(ctx, &row)
}

func (r *TechnicianRepository) Get(ctx context.Context, id string) (*model.Technician, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t := toTechnicianModel(*row)
	return &t, nil
}

func (r *TechnicianRepository) Save(ctx context.Context, t *model.Technician) error {
	row := toTechnicianRow(t)
	return r.save(ctx, &row)
}

func (r *TechnicianRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *TechnicianRepository) List(ctx context.Context) ([]model.Technician, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Technician, 0, len(rows))
	for _, row := range rows {
		result = append(result, toTechnicianModel(row))
	}
	return result, nil
}
