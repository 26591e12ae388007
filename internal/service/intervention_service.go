package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type InterventionRepository interface {
	NextID(ctx context.Context) (string, error)
	Insert(ctx context.Context, i *model.Intervention) error
	Get(ctx context.Context, id string) (*model.Intervention, error)
	Save(ctx context.Context, i *model.Intervention) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Intervention, error)
	CountByStatus(ctx context.Context, status model.InterventionStatus) (int64, error)
}

// InterventionService owns the intervention lifecycle and keeps the
// financial rollups consistent whenever technicians or expenses change.
type InterventionService struct {
	repo InterventionRepository
}

func NewInterventionService(repo InterventionRepository) *InterventionService {
	return &InterventionService{repo: repo}
}

type CreateInterventionInput struct {
	Title           string                       `json:"title"`
	Description     string                       `json:"description"`
	Date            string                       `json:"date"`
	Time            string                       `json:"time"`
	Duration        int                          `json:"duration"`
	Location        model.Location               `json:"location"`
	ClientID        string                       `json:"clientId"`
	ClientName      string                       `json:"client"`
	SiteName        string                       `json:"siteName"`
	SiteContact     model.SiteContact            `json:"siteContact"`
	Technicians     []model.TechnicianAssignment `json:"technicians"`
	Expenses        []model.Expense              `json:"expenses"`
	BuyPrice        model.Numeric                `json:"buyPrice"`
	SellPrice       model.Numeric                `json:"sellPrice"`
	TrackingNumbers []string                     `json:"trackingNumbers"`
	Attachments     []string                     `json:"attachments"`
	ProjectID       string                       `json:"projectId"`
	ServiceID       string                       `json:"serviceId"`
}

// Create stores a new intervention in state pending. Price inputs are
// coerced leniently (unparseable values become 0, never a rejection) and the
// initial total amount is the expected sell price.
func (s *InterventionService) Create(ctx context.Context, input CreateInterventionInput) (*model.Intervention, error) {
	if err := validateRequired(map[string]string{
		"title":       input.Title,
		"description": input.Description,
		"date":        input.Date,
		"time":        input.Time,
		"clientId":    input.ClientID,
		"siteName":    input.SiteName,
	}); err != nil {
		return nil, err
	}
	if input.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration is required", ErrValidation)
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	intervention := &model.Intervention{
		ID:              id,
		Title:           input.Title,
		Description:     input.Description,
		Date:            input.Date,
		Time:            input.Time,
		Duration:        input.Duration,
		Status:          model.InterventionPending,
		Location:        input.Location,
		ClientID:        input.ClientID,
		ClientName:      input.ClientName,
		SiteName:        input.SiteName,
		SiteContact:     input.SiteContact,
		Technicians:     emptyIfNil(input.Technicians),
		Expenses:        emptyIfNil(input.Expenses),
		BuyPrice:        input.BuyPrice,
		SellPrice:       input.SellPrice,
		TotalExpenses:   0,
		TotalAmount:     input.SellPrice,
		TrackingNumbers: emptyIfNil(input.TrackingNumbers),
		Attachments:     emptyIfNil(input.Attachments),
		ProjectID:       input.ProjectID,
		ServiceID:       input.ServiceID,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, intervention); err != nil {
		return nil, err
	}
	return intervention, nil
}

func (s *InterventionService) Get(ctx context.Context, id string) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

func (s *InterventionService) List(ctx context.Context) ([]model.Intervention, error) {
	return s.repo.List(ctx)
}

// Update merges the supplied fields onto the stored record, the same
// whole-snapshot merge the rest of the lifecycle uses. The id is immutable.
func (s *InterventionService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := intervention.CreatedAt
	if err := json.Unmarshal(patch, intervention); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	intervention.ID = id
	intervention.CreatedAt = createdAt

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

type AssignTechniciansInput struct {
	Primary       *model.TechnicianAssignment  `json:"primary"`
	Secondaries   []model.TechnicianAssignment `json:"secondaries"`
	ConfirmReopen bool                         `json:"confirmReopen"`
}

// AssignTechnicians replaces the technician list wholesale. The supplied
// primary is the only primary afterwards; everyone else is forced to
// secondary, which also demotes a previous lead passed in the secondary
// list. Reassigning a completed intervention reopens it, and that transition
// has to be confirmed explicitly.
func (s *InterventionService) AssignTechnicians(ctx context.Context, id string, input AssignTechniciansInput) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if intervention.Status == model.InterventionCompleted && !input.ConfirmReopen {
		return nil, fmt.Errorf("%w: intervention %s is completed; set confirmReopen to reassign", ErrValidation, id)
	}

	technicians := make([]model.TechnicianAssignment, 0, len(input.Secondaries)+1)
	if input.Primary != nil {
		primary := *input.Primary
		primary.Role = model.RolePrimary
		if err := validateAssignment(primary); err != nil {
			return nil, err
		}
		technicians = append(technicians, primary)
	}
	for _, secondary := range input.Secondaries {
		secondary.Role = model.RoleSecondary
		if err := validateAssignment(secondary); err != nil {
			return nil, err
		}
		technicians = append(technicians, secondary)
	}

	intervention.Technicians = technicians
	intervention.Status = model.InterventionInProgress
	rollupTechnicians(intervention)
	rollupExpenses(intervention)

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

// RecordExpense appends an ad-hoc expense and refreshes the expense totals.
// The intervention-level buy/sell prices are left untouched so manual
// estimates survive on interventions without technicians.
func (s *InterventionService) RecordExpense(ctx context.Context, id string, expense model.Expense) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	intervention.Expenses = append(intervention.Expenses, expense)
	rollupExpenses(intervention)

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

// Close attaches the closure record and marks the intervention completed.
func (s *InterventionService) Close(ctx context.Context, id string, closure model.ClosureData) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if intervention.Status != model.InterventionInProgress {
		return nil, fmt.Errorf("%w: only an in-progress intervention can be closed", ErrValidation)
	}
	if err := validateRequired(map[string]string{
		"completionNotes": closure.CompletionNotes,
		"arrivalTime":     closure.ArrivalTime,
		"departureTime":   closure.DepartureTime,
		"signatoryName":   closure.SignatoryName,
	}); err != nil {
		return nil, err
	}
	if closure.NeedsFollowUp && strings.TrimSpace(closure.FollowUpNotes) == "" {
		return nil, fmt.Errorf("%w: followUpNotes is required when needsFollowUp is set", ErrValidation)
	}

	intervention.Closure = &closure
	intervention.Status = model.InterventionCompleted

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

// Duplicate copies an intervention into a fresh pending record. Price
// expectations carry over as the starting estimate while the technician list
// and closure record do not; expense totals restart at zero.
func (s *InterventionService) Duplicate(ctx context.Context, id string) (*model.Intervention, error) {
	source, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	newID, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, err
	}

	copy := *source
	copy.ID = newID
	copy.Status = model.InterventionPending
	copy.Technicians = []model.TechnicianAssignment{}
	copy.Closure = nil
	copy.TotalExpenses = 0
	copy.TotalAmount = copy.SellPrice
	copy.CreatedAt = time.Now().UTC()

	if err := s.repo.Insert(ctx, &copy); err != nil {
		return nil, err
	}
	return &copy, nil
}

func (s *InterventionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *InterventionService) AddTrackingNumber(ctx context.Context, id, number string) (*model.Intervention, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: trackingNumber is required", ErrValidation)
	}

	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	for _, existing := range intervention.TrackingNumbers {
		if existing == number {
			return intervention, nil
		}
	}
	intervention.TrackingNumbers = append(intervention.TrackingNumbers, number)

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

func (s *InterventionService) RemoveTrackingNumber(ctx context.Context, id, number string) (*model.Intervention, error) {
	intervention, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	kept := intervention.TrackingNumbers[:0]
	for _, existing := range intervention.TrackingNumbers {
		if existing != number {
			kept = append(kept, existing)
		}
	}
	intervention.TrackingNumbers = kept

	if err := s.repo.Save(ctx, intervention); err != nil {
		return nil, mapNotFound(err)
	}
	return intervention, nil
}

// rollupTechnicians derives the intervention-level buy/sell prices from the
// assigned technicians, treating absent prices as 0.
func rollupTechnicians(i *model.Intervention) {
	var buy, sell float64
	for _, tech := range i.Technicians {
		if tech.BuyPrice != nil {
			buy += *tech.BuyPrice
		}
		if tech.SellPrice != nil {
			sell += *tech.SellPrice
		}
	}
	i.BuyPrice = model.Numeric(buy)
	i.SellPrice = model.Numeric(sell)
}

// rollupExpenses derives totalExpenses and totalAmount from the expense
// list and the current sell price.
func rollupExpenses(i *model.Intervention) {
	var total float64
	for _, expense := range i.Expenses {
		total += float64(expense.Amount)
	}
	i.TotalExpenses = model.Numeric(total)
	i.TotalAmount = i.SellPrice + i.TotalExpenses
}

func validateAssignment(assignment model.TechnicianAssignment) error {
	if strings.TrimSpace(assignment.ID) == "" {
		return fmt.Errorf("%w: technician id is required", ErrValidation)
	}
	if assignment.IsSubcontractor {
		if assignment.BuyPrice == nil || assignment.SellPrice == nil {
			return fmt.Errorf("%w: subcontractor %s requires buy and sell prices", ErrValidation, assignment.Name)
		}
		if *assignment.BuyPrice < 0 || *assignment.SellPrice < 0 {
			return fmt.Errorf("%w: subcontractor prices must not be negative", ErrValidation)
		}
	}
	return nil
}

func validateRequired(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
