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

type fakeProjectRepo struct {
	items map[string]model.Project
	order []string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{items: map[string]model.Project{}}
}

func (r *fakeProjectRepo) Insert(_ context.Context, p *model.Project) error {
	r.items[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProjectRepo) Get(_ context.Context, id string) (*model.Project, error) {
	found, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &found, nil
}

func (r *fakeProjectRepo) Save(_ context.Context, p *model.Project) error {
	if _, ok := r.items[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]model.Project, error) {
	result := make([]model.Project, 0, len(r.items))
	for _, id := range r.order {
		if found, ok := r.items[id]; ok {
			result = append(result, found)
		}
	}
	return result, nil
}

func newProjectService() (*ProjectService, *fakeProjectRepo, *fakeInterventionRepo) {
	projects := newFakeProjectRepo()
	interventions := newFakeInterventionRepo()
	return NewProjectService(projects, interventions), projects, interventions
}

func TestCreateProjectDefaultsToPlanned(t *testing.T) {
	svc, _, _ := newProjectService()

	project, err := svc.Create(context.Background(), CreateProjectInput{
		Name:      "Rénovation agences",
		ClientID:  "cl-1",
		StartDate: "2026-09-01",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, model.ProjectPlanned, project.Status)
	assert.NotNil(t, project.Interventions)
	assert.Empty(t, project.Interventions)
}

func TestCreateProjectRequiresCoreFields(t *testing.T) {
	svc, _, _ := newProjectService()

	_, err := svc.Create(context.Background(), CreateProjectInput{Name: "Sans client"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetProjectHydratesInterventions(t *testing.T) {
	svc, _, interventions := newProjectService()
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateProjectInput{
		Name:      "Déploiement bornes",
		ClientID:  "cl-1",
		StartDate: "2026-09-01",
	})
	require.NoError(t, err)

	require.NoError(t, interventions.Insert(ctx, &model.Intervention{
		ID:        "T00001",
		Title:     "Pose borne",
		ProjectID: project.ID,
	}))
	require.NoError(t, interventions.Insert(ctx, &model.Intervention{
		ID:        "T00002",
		Title:     "Hors projet",
	}))

	got, err := svc.Get(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, got.Interventions, 1)
	assert.Equal(t, "Pose borne", got.Interventions[0].Title)
}

func TestDuplicateProjectRenamesAndRedatesInterventions(t *testing.T) {
	svc, repo, interventions := newProjectService()
	ctx := context.Background()

	source, err := svc.Create(ctx, CreateProjectInput{
		Name:        "Campagne hiver",
		Description: "Maintenance préventive",
		ClientID:    "cl-1",
		ClientName:  "Durand BTP",
		StartDate:   "2026-01-10",
		Status:      model.ProjectCompleted,
	})
	require.NoError(t, err)
	require.NoError(t, interventions.Insert(ctx, &model.Intervention{
		ID:        "T00001",
		Title:     "Contrôle chaufferie",
		Date:      "2026-01-12",
		Status:    model.InterventionCompleted,
		ProjectID: source.ID,
	}))

	duplicated, err := svc.Duplicate(ctx, source.ID, "2026-11-02")
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, duplicated.ID)
	assert.Equal(t, "Campagne hiver (Copy)", duplicated.Name)
	assert.Equal(t, model.ProjectPlanned, duplicated.Status)
	assert.Equal(t, "2026-11-02", duplicated.StartDate)
	assert.Equal(t, "Maintenance préventive", duplicated.Description)

	require.Len(t, duplicated.Interventions, 1)
	moved := duplicated.Interventions[0]
	assert.NotEqual(t, "T00001", moved.ID)
	assert.Equal(t, duplicated.ID, moved.ProjectID)
	assert.Equal(t, "2026-11-02", moved.Date)
	assert.Equal(t, "Contrôle chaufferie", moved.Title)

	// The source project and its intervention stay untouched.
	kept, err := svc.Get(ctx, source.ID)
	require.NoError(t, err)
	require.Len(t, kept.Interventions, 1)
	assert.Equal(t, "2026-01-12", kept.Interventions[0].Date)
	assert.Len(t, repo.items, 2)
}

func TestDuplicateProjectRequiresStartDate(t *testing.T) {
	svc, _, _ := newProjectService()

	_, err := svc.Duplicate(context.Background(), "any", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDuplicateMissingProjectReturnsNotFound(t *testing.T) {
	svc, _, _ := newProjectService()

	_, err := svc.Duplicate(context.Background(), "missing", "2026-11-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProjectMergesPartialPatch(t *testing.T) {
	svc, _, _ := newProjectService()
	ctx := context.Background()

	project, err := svc.Create(ctx, CreateProjectInput{
		Name:      "Campagne hiver",
		ClientID:  "cl-1",
		StartDate: "2026-01-10",
	})
	require.NoError(t, err)

	patch := json.RawMessage(`{"status":"IN_PROGRESS","endDate":"2026-03-31"}`)
	updated, err := svc.Update(ctx, project.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, model.ProjectInProgress, updated.Status)
	assert.Equal(t, "2026-03-31", updated.EndDate)
	assert.Equal(t, "Campagne hiver", updated.Name)
	assert.Equal(t, project.CreatedAt, updated.CreatedAt)
}

func TestDeleteMissingProjectReturnsNotFound(t *testing.T) {
	svc, _, _ := newProjectService()

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportProjectsCreatesEmbeddedIntervention(t *testing.T) {
	svc, repo, interventions := newProjectService()

	report, err := svc.Import(context.Background(), []map[string]string{
		{
			"name":              "Site Lyon",
			"clientId":          "cl-1",
			"clientName":        "Durand BTP",
			"startDate":         "2026-09-01",
			"interventionTitle": "Audit initial",
			"interventionDate":  "2026-09-02",
			"address":           "12 rue de la Paix",
			"city":              "Lyon",
			"postalCode":        "69001",
			"latitude":          "45,76",
			"longitude":         "4.84",
			"phone":             "0612345678",
		},
		{"name": "Sans client"},
		{"name": "Site Nantes", "clientId": "cl-2", "startDate": "2026-10-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 2, report.Skipped[0].Row)
	assert.Len(t, repo.items, 2)

	all, err := interventions.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	created := all[0]
	assert.Equal(t, "Audit initial", created.Title)
	assert.Equal(t, model.InterventionPending, created.Status)
	assert.Equal(t, "Durand BTP", created.ClientName)
	assert.Equal(t, "Lyon", created.SiteName)
	assert.Equal(t, "0612345678", created.SiteContact.Phone)
	assert.InDelta(t, 45.76, created.Location.Latitude, 0.001)
	assert.InDelta(t, 4.84, created.Location.Longitude, 0.001)

	var lyon model.Project
	for _, p := range repo.items {
		if p.Name == "Site Lyon" {
			lyon = p
		}
	}
	assert.Equal(t, lyon.ID, created.ProjectID)
}
