package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Zandino/Deltapp/internal/model"
)

type fakeContractRepo struct {
	items map[string]model.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{items: map[string]model.Contract{}}
}

func (r *fakeContractRepo) Insert(_ context.Context, c *model.Contract) error {
	r.items[c.ID] = *c
	return nil
}

func (r *fakeContractRepo) Get(_ context.Context, id string) (*model.Contract, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakeContractRepo) Save(_ context.Context, c *model.Contract) error {
	if _, ok := r.items[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *fakeContractRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeContractRepo) List(_ context.Context) ([]model.Contract, error) {
	result := make([]model.Contract, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, c)
	}
	return result, nil
}

func newTestContract(t *testing.T, svc *ContractService) *model.Contract {
	t.Helper()
	created, err := svc.Create(context.Background(), CreateContractInput{
		Name:      "Maintenance annuelle",
		Type:      model.ContractMaintenance,
		ClientID:  "client-1",
		StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	return created
}

func TestContractCreateDefaultsToActive(t *testing.T) {
	svc := NewContractService(newFakeContractRepo())
	created := newTestContract(t, svc)

	assert.Equal(t, model.ContractActive, created.Status)
	assert.NotNil(t, created.Services)
	assert.Len(t, created.Services, 0)
}

func TestContractServiceLines(t *testing.T) {
	svc := NewContractService(newFakeContractRepo())
	contract := newTestContract(t, svc)

	updated, err := svc.AddService(context.Background(), contract.ID, ServiceInput{
		Name: "Visite trimestrielle", Quantity: 4, Unit: model.UnitUnit,
	})
	require.NoError(t, err)
	require.Len(t, updated.Services, 1)
	serviceID := updated.Services[0].ID

	updated, err = svc.UpdateService(context.Background(), contract.ID, serviceID,
		json.RawMessage(`{"quantity": 6}`))
	require.NoError(t, err)
	assert.Equal(t, float64(6), updated.Services[0].Quantity)
	assert.Equal(t, "Visite trimestrielle", updated.Services[0].Name)

	_, err = svc.UpdateService(context.Background(), contract.ID, "missing", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err = svc.DeleteService(context.Background(), contract.ID, serviceID)
	require.NoError(t, err)
	assert.Empty(t, updated.Services)

	_, err = svc.DeleteService(context.Background(), contract.ID, serviceID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContractImportRequiresNameAndClient(t *testing.T) {
	svc := NewContractService(newFakeContractRepo())

	report, err := svc.Import(context.Background(), []map[string]string{
		{"name": "Maintenance", "clientId": "client-1", "startDate": "2026-01-01"},
		{"name": "Sans client"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Imported)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 2, report.Skipped[0].Row)
}
