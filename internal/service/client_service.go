package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type ClientRepository interface {
	Insert(ctx context.Context, c *model.Client) error
	Get(ctx context.Context, id string) (*model.Client, error)
	Save(ctx context.Context, c *model.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Client, error)
}

type ClientService struct {
	repo ClientRepository
}

func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

type CreateClientInput struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*model.Client, error) {
	if err := validateRequired(map[string]string{"name": input.Name}); err != nil {
		return nil, err
	}

	client := &model.Client{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Company:    input.Company,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := client.CreatedAt
	if err := json.Unmarshal(patch, client); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	client.ID = id
	client.CreatedAt = createdAt

	if err := s.repo.Save(ctx, client); err != nil {
		return nil, mapNotFound(err)
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

// Import appends one client per spreadsheet row; it does not deduplicate
// against existing records.
func (s *ClientService) Import(ctx context.Context, rows []map[string]string) (*ImportReport, error) {
	report := &ImportReport{}
	for idx, row := range rows {
		if row["name"] == "" {
			report.skip(idx+1, "name is required")
			continue
		}
		client := &model.Client{
			ID:         uuid.NewString(),
			Name:       row["name"],
			Company:    row["company"],
			Email:      row["email"],
			Phone:      row["phone"],
			Address:    row["address"],
			City:       row["city"],
			PostalCode: row["postalCode"],
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, client); err != nil {
			report.skip(idx+1, err.Error())
			continue
		}
		report.Imported++
	}
	return report, nil
}
