package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type fakePriceRepo struct {
	items map[string]model.Price
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{items: map[string]model.Price{}}
}

func (r *fakePriceRepo) Insert(_ context.Context, p *model.Price) error {
	r.items[p.ID] = *p
	return nil
}

func (r *fakePriceRepo) Get(_ context.Context, id string) (*model.Price, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakePriceRepo) Save(_ context.Context, p *model.Price) error {
	if _, ok := r.items[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *fakePriceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakePriceRepo) List(_ context.Context) ([]model.Price, error) {
	result := make([]model.Price, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, p)
	}
	return result, nil
}

func TestPriceCreateRequiresClientAndServiceType(t *testing.T) {
	svc := NewPriceService(newFakePriceRepo())

	_, err := svc.Create(context.Background(), CreatePriceInput{ClientID: "client-1"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(context.Background(), CreatePriceInput{
		ClientID: "client-1", ServiceType: "Maintenance", BuyPrice: 80, SellPrice: 120,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestPriceImportCoercesAmounts(t *testing.T) {
	repo := newFakePriceRepo()
	svc := NewPriceService(repo)

	report, err := svc.Import(context.Background(), []map[string]string{
		{"clientId": "client-1", "serviceType": "Maintenance", "buyPrice": "80,50", "sellPrice": "120"},
		{"clientId": "client-1", "serviceType": "Dépannage", "sellPrice": "n/a"},
		{"serviceType": "Orphelin"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 3, report.Skipped[0].Row)

	var maintenance, repair *model.Price
	for _, p := range repo.items {
		price := p
		switch price.ServiceType {
		case "Maintenance":
			maintenance = &price
		case "Dépannage":
			repair = &price
		}
	}
	require.NotNil(t, maintenance)
	require.NotNil(t, repair)
	assert.Equal(t, model.Numeric(80.5), maintenance.BuyPrice)
	assert.Equal(t, model.Numeric(120), maintenance.SellPrice)
	assert.Equal(t, model.Numeric(0), repair.SellPrice)
}
