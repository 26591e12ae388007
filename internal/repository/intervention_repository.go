package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

const interventionSequence = "interventions"

type InterventionRepository struct {
	store[interventionRow]
	db *gorm.DB
}

func NewInterventionRepository(db *gorm.DB) *InterventionRepository {
	return &InterventionRepository{store: newStore[interventionRow](db), db: db}
}

type interventionRow struct {
	ID              string    `gorm:"column:id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	Date            string    `gorm:"column:date"`
	Time            string    `gorm:"column:time"`
	Duration        int       `gorm:"column:duration"`
	Status          string    `gorm:"column:status"`
	Location        string    `gorm:"column:location"`
	ClientID        string    `gorm:"column:client_id"`
	ClientName      string    `gorm:"column:client_name"`
	SiteName        string    `gorm:"column:site_name"`
	SiteContact     string    `gorm:"column:site_contact"`
	Technicians     string    `gorm:"column:technicians"`
	Expenses        string    `gorm:"column:expenses"`
	BuyPrice        float64   `gorm:"column:buy_price"`
	SellPrice       float64   `gorm:"column:sell_price"`
	TotalExpenses   float64   `gorm:"column:total_expenses"`
	TotalAmount     float64   `gorm:"column:total_amount"`
	Closure         *string   `gorm:"column:closure"`
	TrackingNumbers string    `gorm:"column:tracking_numbers"`
	Attachments     string    `gorm:"column:attachments"`
	ProjectID       string    `gorm:"column:project_id"`
	ServiceID       string    `gorm:"column:service_id"`
	InvoiceNumber   string    `gorm:"column:invoice_number"`
	InvoiceStatus   string    `gorm:"column:invoice_status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (interventionRow) TableName() string { return "interventions" }

func toInterventionRow(i *model.Intervention) interventionRow {
	var closure *string
	if i.Closure != nil {
		raw := marshalJSON(i.Closure)
		closure = &raw
	}
	return interventionRow{
		ID:              i.ID,
		Title:           i.Title,
		Description:     i.Description,
		Date:            i.Date,
		Time:            i.Time,
		Duration:        i.Duration,
		Status:          string(i.Status),
		Location:        marshalJSON(i.Location),
		ClientID:        i.ClientID,
		ClientName:      i.ClientName,
		SiteName:        i.SiteName,
		SiteContact:     marshalJSON(i.SiteContact),
		Technicians:     marshalJSON(i.Technicians),
		Expenses:        marshalJSON(i.Expenses),
		BuyPrice:        float64(i.BuyPrice),
		SellPrice:       float64(i.SellPrice),
		TotalExpenses:   float64(i.TotalExpenses),
		TotalAmount:     float64(i.TotalAmount),
		Closure:         closure,
		TrackingNumbers: marshalJSON(i.TrackingNumbers),
		Attachments:     marshalJSON(i.Attachments),
		ProjectID:       i.ProjectID,
		ServiceID:       i.ServiceID,
		InvoiceNumber:   i.InvoiceNumber,
		InvoiceStatus:   string(i.InvoiceStatus),
		CreatedAt:       i.CreatedAt,
	}
}

func toInterventionModel(row interventionRow) model.Intervention {
	var closure *model.ClosureData
	if row.Closure != nil && *row.Closure != "" && *row.Closure != "null" {
		parsed := unmarshalJSON(*row.Closure, model.ClosureData{})
		closure = &parsed
	}
	return model.Intervention{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Date:            row.Date,
		Time:            row.Time,
		Duration:        row.Duration,
		Status:          model.InterventionStatus(row.Status),
		Location:        unmarshalJSON(row.Location, model.Location{}),
		ClientID:        row.ClientID,
		ClientName:      row.ClientName,
		SiteName:        row.SiteName,
		SiteContact:     unmarshalJSON(row.SiteContact, model.SiteContact{}),
		Technicians:     unmarshalJSON(row.Technicians, []model.TechnicianAssignment{}),
		Expenses:        unmarshalJSON(row.Expenses, []model.Expense{}),
		BuyPrice:        model.Numeric(row.BuyPrice),
		SellPrice:       model.Numeric(row.SellPrice),
		TotalExpenses:   model.Numeric(row.TotalExpenses),
		TotalAmount:     model.Numeric(row.TotalAmount),
		Closure:         closure,
		TrackingNumbers: unmarshalJSON(row.TrackingNumbers, []string{}),
		Attachments:     unmarshalJSON(row.Attachments, []string{}),
		ProjectID:       row.ProjectID,
		ServiceID:       row.ServiceID,
		InvoiceNumber:   row.InvoiceNumber,
		InvoiceStatus:   model.InvoiceProgress(row.InvoiceStatus),
		CreatedAt:       row.CreatedAt,
	}
}

// NextID issues the next display-formatted intervention id (T00001, ...).
func (r *InterventionRepository) NextID(ctx context.Context) (string, error) {
	value, err := nextSequence(ctx, r.db, interventionSequence)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("T%05d", value), nil
}

func (r *InterventionRepository) Insert(ctx context.Context, i *model.Intervention) error {
	row := toInterventionRow(i)
	return r.insert(ctx, &row)
}

func (r *InterventionRepository) Get(ctx context.Context, id string) (*model.Intervention, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	i := toInterventionModel(*row)
	return &i, nil
}

func (r *InterventionRepository) Save(ctx context.Context, i *model.Intervention) error {
	row := toInterventionRow(i)
	return r.save(ctx, &row)
}

func (r *InterventionRepository) Delete(ctx context.Context, id string) error {
	return r.remove(ctx, id)
}

func (r *InterventionRepository) List(ctx context.Context) ([]model.Intervention, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Intervention, 0, len(rows))
	for _, row := range rows {
		result = append(result, toInterventionModel(row))
	}
	return result, nil
}

func (r *InterventionRepository) ListByProject(ctx context.Context, projectID string) ([]model.Intervention, error) {
	var rows []interventionRow
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]model.Intervention, 0, len(rows))
	for _, row := range rows {
		result = append(result, toInterventionModel(row))
	}
	return result, nil
}

func (r *InterventionRepository) CountByStatus(ctx context.Context, status model.InterventionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&interventionRow{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}
