package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type ContractRepository interface {
	Insert(ctx context.Context, c *model.Contract) error
	Get(ctx context.Context, id string) (*model.Contract, error)
	Save(ctx context.Context, c *model.Contract) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Contract, error)
}

type ContractService struct {
	repo ContractRepository
}

func NewContractService(repo ContractRepository) *ContractService {
	return &ContractService{repo: repo}
}

type CreateContractInput struct {
	Name      string               `json:"name"`
	Type      model.ContractType   `json:"type"`
	ClientID  string               `json:"clientId"`
	StartDate string               `json:"startDate"`
	EndDate   string               `json:"endDate"`
	Status    model.ContractStatus `json:"status"`
}

func (s *ContractService) Create(ctx context.Context, input CreateContractInput) (*model.Contract, error) {
	if err := validateRequired(map[string]string{
		"name":     input.Name,
		"clientId": input.ClientID,
	}); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = model.ContractActive
	}

	contract := &model.Contract{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Type:      input.Type,
		ClientID:  input.ClientID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    status,
		Services:  []model.Service{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) Get(ctx context.Context, id string) (*model.Contract, error) {
	contract, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return contract, nil
}

func (s *ContractService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Contract, error) {
	contract, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := contract.CreatedAt
	if err := json.Unmarshal(patch, contract); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	contract.ID = id
	contract.CreatedAt = createdAt

	if err := s.repo.Save(ctx, contract); err != nil {
		return nil, mapNotFound(err)
	}
	return contract, nil
}

func (s *ContractService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *ContractService) List(ctx context.Context) ([]model.Contract, error) {
	return s.repo.List(ctx)
}

type ServiceInput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Quantity    float64           `json:"quantity"`
	Unit        model.ServiceUnit `json:"unit"`
	PriceID     string            `json:"priceId"`
}

// AddService appends a service line to a contract.
func (s *ContractService) AddService(ctx context.Context, contractID string, input ServiceInput) (*model.Contract, error) {
	if err := validateRequired(map[string]string{"name": input.Name}); err != nil {
		return nil, err
	}

	contract, err := s.repo.Get(ctx, contractID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	contract.Services = append(contract.Services, model.Service{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		PriceID:     input.PriceID,
	})

	if err := s.repo.Save(ctx, contract); err != nil {
		return nil, mapNotFound(err)
	}
	return contract, nil
}

func (s *ContractService) UpdateService(ctx context.Context, contractID, serviceID string, patch json.RawMessage) (*model.Contract, error) {
	contract, err := s.repo.Get(ctx, contractID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	found := false
	for idx := range contract.Services {
		if contract.Services[idx].ID != serviceID {
			continue
		}
		if err := json.Unmarshal(patch, &contract.Services[idx]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		contract.Services[idx].ID = serviceID
		found = true
		break
	}
	if !found {
		return nil, ErrNotFound
	}

	if err := s.repo.Save(ctx, contract); err != nil {
		return nil, mapNotFound(err)
	}
	return contract, nil
}

func (s *ContractService) DeleteService(ctx context.Context, contractID, serviceID string) (*model.Contract, error) {
	contract, err := s.repo.Get(ctx, contractID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	kept := contract.Services[:0]
	found := false
	for _, service := range contract.Services {
		if service.ID == serviceID {
			found = true
			continue
		}
		kept = append(kept, service)
	}
	if !found {
		return nil, ErrNotFound
	}
	contract.Services = kept

	if err := s.repo.Save(ctx, contract); err != nil {
		return nil, mapNotFound(err)
	}
	return contract, nil
}

// Import appends one contract per spreadsheet row.
func (s *ContractService) Import(ctx context.Context, rows []map[string]string) (*ImportReport, error) {
	report := &ImportReport{}
	for idx, row := range rows {
		if row["name"] == "" || row["clientId"] == "" {
			report.skip(idx+1, "name and clientId are required")
			continue
		}
		status := model.ContractStatus(row["status"])
		if status == "" {
			status = model.ContractActive
		}
		contract := &model.Contract{
			ID:        uuid.NewString(),
			Name:      row["name"],
			Type:      model.ContractType(row["type"]),
			ClientID:  row["clientId"],
			StartDate: row["startDate"],
			EndDate:   row["endDate"],
			Status:    status,
			Services:  []model.Service{},
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, contract); err != nil {
			report.skip(idx+1, err.Error())
			continue
		}
		report.Imported++
	}
	return report, nil
}
