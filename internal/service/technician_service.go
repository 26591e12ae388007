package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type TechnicianRepository interface {
	Insert(ctx context.Context, t *model.Technician) error
	Get(ctx context.Context, id string) (*model.Technician, error)
	Save(ctx context.Context, t *model.Technician) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Technician, error)
}

type TechnicianService struct {
	repo TechnicianRepository
}

func NewTechnicianService(repo TechnicianRepository) *TechnicianService {
	return &TechnicianService{repo: repo}
}

type CreateTechnicianInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *TechnicianService) Create(ctx context.Context, input CreateTechnicianInput) (*model.Technician, error) {
	if err := validateRequired(map[string]string{"name": input.Name}); err != nil {
		return nil, err
	}

	technician := &model.Technician{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Role:      input.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, technician); err != nil {
		return nil, err
	}
	return technician, nil
}

func (s *TechnicianService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Technician, error) {
	technician, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := technician.CreatedAt
	if err := json.Unmarshal(patch, technician); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	technician.ID = id
	technician.CreatedAt = createdAt

	if err := s.repo.Save(ctx, technician); err != nil {
		return nil, mapNotFound(err)
	}
	return technician, nil
}

func (s *TechnicianService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *TechnicianService) List(ctx context.Context) ([]model.Technician, error) {
	return s.repo.List(ctx)
}
