package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type DocumentRepository interface {
	Insert(ctx context.Context, d *model.AdminDocument) error
	Get(ctx context.Context, id string) (*model.AdminDocument, error)
	Save(ctx context.Context, d *model.AdminDocument) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.AdminDocument, error)
}

type DocumentService struct {
	repo DocumentRepository
}

func NewDocumentService(repo DocumentRepository) *DocumentService {
	return &DocumentService{repo: repo}
}

type CreateDocumentInput struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiryDate"`
	File       string `json:"file"`
	Status     string `json:"status"`
}

func (s *DocumentService) Create(ctx context.Context, input CreateDocumentInput) (*model.AdminDocument, error) {
	if err := validateRequired(map[string]string{"name": input.Name}); err != nil {
		return nil, err
	}

	document := &model.AdminDocument{
		ID:         uuid.NewString(),
		Type:       input.Type,
		Name:       input.Name,
		ExpiryDate: input.ExpiryDate,
		File:       input.File,
		Status:     input.Status,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.AdminDocument, error) {
	document, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := document.CreatedAt
	if err := json.Unmarshal(patch, document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	document.ID = id
	document.CreatedAt = createdAt

	if err := s.repo.Save(ctx, document); err != nil {
		return nil, mapNotFound(err)
	}
	return document, nil
}

func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func (s *DocumentService) List(ctx context.Context) ([]model.AdminDocument, error) {
	return s.repo.List(ctx)
}
