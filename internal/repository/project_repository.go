package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type ProjectRepository struct {
	store[projectRow]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{store: newStore[projectRow](db)}
}

type projectRow struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	ClientID    string    `gorm:"column:client_id"`
	ClientName  string    `gorm:"column:client_name"`
	StartDate   string    `gorm:"column:start_date"`
	EndDate     string    `gorm:"column:end_date"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (projectRow) TableName() string { return "projects" }

func toProjectRow(p *model.Project) projectRow {
	return projectRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ClientID:    p.ClientID,
		ClientName:  p.ClientName,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}

// toProjectModel leaves Interventions nil; the service hydrates the list.
func toProjectModel(row projectRow) model.Project {
	return model.Project{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		ClientID:    row.ClientID,
		ClientName:  row.ClientName,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Status:      model.ProjectStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, p *model.Project) error {
	row := toProjectRow(p)
	return r.insert(ctx, &row)
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	p := toProjectModel(*row)
	return &p, nil
}

func (r *ProjectRepository) Save(ctx context.Context, p *model.Project) error {
	row := toProjectRow(p)
	return r.save(ctx, &row)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		result = append(result, toProjectModel(row))
	}
	return result, nil
}
