package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type PriceRepository interface {
	Insert(ctx context.Context, p *model.Price) error
	Get(ctx context.Context, id string) (*model.Price, error)
	Save(ctx context.Context, p *model.Price) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Price, error)
}

type PriceService struct {
	repo PriceRepository
}

func NewPriceService(repo PriceRepository) *PriceService {
	return &PriceService{repo: repo}
}

type CreatePriceInput struct {
	ClientID     string            `json:"clientId"`
	ClientName   string            `json:"clientName"`
	ContractID   string            `json:"contractId"`
	ContractName string            `json:"contractName"`
	ServiceType  string            `json:"serviceType"`
	Description  string            `json:"description"`
	BuyPrice     model.Numeric     `json:"buyPrice"`
	SellPrice    model.Numeric     `json:"sellPrice"`
	Unit         model.ServiceUnit `json:"unit"`
}

func (s *PriceService) Create(ctx context.Context, input CreatePriceInput) (*model.Price, error) {
	if err := validateRequired(map[string]string{
		"clientId":    input.ClientID,
		"serviceType": input.ServiceType,
	}); err != nil {
		return nil, err
	}

	price := &model.Price{
		ID:           uuid.NewString(),
		ClientID:     input.ClientID,
		ClientName:   input.ClientName,
		ContractID:   input.ContractID,
		ContractName: input.ContractName,
		ServiceType:  input.ServiceType,
		Description:  input.Description,
		BuyPrice:     input.BuyPrice,
		SellPrice:    input.SellPrice,
		Unit:         input.Unit,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *PriceService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Price, error) {
	price, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := price.CreatedAt
	if err := json.Unmarshal(patch, price); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	price.ID = id
	price.CreatedAt = createdAt

	if err := s.repo.Save(ctx, price); err != nil {
		return nil, mapNotFound(err)
	}
	return price, nil
}

func (s *PriceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *PriceService) List(ctx context.Context) ([]model.Price, error) {
	return s.repo.List(ctx)
}

// Import appends one pricing row per spreadsheet row. Prices are coerced
// leniently, the same rule applied to form input.
func (s *PriceService) Import(ctx context.Context, rows []map[string]string) (*ImportReport, error) {
	report := &ImportReport{}
	for idx, row := range rows {
		if row["clientId"] == "" || row["serviceType"] == "" {
			report.skip(idx+1, "clientId and serviceType are required")
			continue
		}
		price := &model.Price{
			ID:           uuid.NewString(),
			ClientID:     row["clientId"],
			ClientName:   row["clientName"],
			ContractID:   row["contractId"],
			ContractName: row["contractName"],
			ServiceType:  row["serviceType"],
			Description:  row["description"],
			BuyPrice:     model.ParseNumeric(row["buyPrice"]),
			SellPrice:    model.ParseNumeric(row["sellPrice"]),
			Unit:         model.ServiceUnit(row["unit"]),
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, price); err != nil {
			report.skip(idx+1, err.Error())
			continue
		}
		report.Imported++
	}
	return report, nil
}
