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

type fakeClientRepo struct {
	items map[string]model.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{items: map[string]model.Client{}}
}

func (r *fakeClientRepo) Insert(_ context.Context, c *model.Client) error {
	r.items[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) Get(_ context.Context, id string) (*model.Client, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakeClientRepo) Save(_ context.Context, c *model.Client) error {
	if _, ok := r.items[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeClientRepo) List(_ context.Context) ([]model.Client, error) {
	result := make([]model.Client, 0, len(r.items))
	for _, c := range r.items {
		result = append(result, c)
	}
	return result, nil
}

func TestClientCreateRequiresName(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())

	_, err := svc.Create(context.Background(), CreateClientInput{Company: "Acme"})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Create(context.Background(), CreateClientInput{Name: "Acme SARL", City: "Lyon"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestClientUpdateMergesPartialPatch(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())

	created, err := svc.Create(context.Background(), CreateClientInput{
		Name: "Acme SARL", City: "Lyon", Phone: "0612345678",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, json.RawMessage(`{"city": "Paris"}`))
	require.NoError(t, err)
	assert.Equal(t, "Paris", updated.City)
	assert.Equal(t, "0612345678", updated.Phone)
	assert.Equal(t, created.ID, updated.ID)
}

func TestClientDeleteMissingReturnsNotFound(t *testing.T) {
	svc := NewClientService(newFakeClientRepo())
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientImportSkipsBadRowsAndReports(t *testing.T) {
	repo := newFakeClientRepo()
	svc := NewClientService(repo)

	report, err := svc.Import(context.Background(), []map[string]string{
		{"name": "Acme SARL", "city": "Lyon"},
		{"company": "Sans nom"},
		{"name": "Bravo SAS", "postalCode": "75011"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 2, report.Skipped[0].Row)
	assert.Len(t, repo.items, 2)
}
