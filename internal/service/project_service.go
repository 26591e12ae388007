package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Zandino/Deltapp/internal/model"
)

type ProjectRepository interface {
	Insert(ctx context.Context, p *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	Save(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Project, error)
}

// ProjectInterventions is the slice of the intervention store the project
// service needs: duplication re-creates a project's interventions and reads
// hydrate the list.
type ProjectInterventions interface {
	NextID(ctx context.Context) (string, error)
	Insert(ctx context.Context, i *model.Intervention) error
	ListByProject(ctx context.Context, projectID string) ([]model.Intervention, error)
}

type ProjectService struct {
	repo          ProjectRepository
	interventions ProjectInterventions
}

func NewProjectService(repo ProjectRepository, interventions ProjectInterventions) *ProjectService {
	return &ProjectService{repo: repo, interventions: interventions}
}

type CreateProjectInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ClientID    string              `json:"clientId"`
	ClientName  string              `json:"clientName"`
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	Status      model.ProjectStatus `json:"status"`
}

func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	if err := validateRequired(map[string]string{
		"name":      input.Name,
		"clientId":  input.ClientID,
		"startDate": input.StartDate,
	}); err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = model.ProjectPlanned
	}

	project := &model.Project{
		ID:            uuid.NewString(),
		Name:          input.Name,
		Description:   input.Description,
		ClientID:      input.ClientID,
		ClientName:    input.ClientName,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        status,
		Interventions: []model.Intervention{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.hydrate(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for idx := range projects {
		if err := s.hydrate(ctx, &projects[idx]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, patch json.RawMessage) (*model.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	createdAt := project.CreatedAt
	if err := json.Unmarshal(patch, project); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	project.ID = id
	project.CreatedAt = createdAt

	if err := s.repo.Save(ctx, project); err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.hydrate(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}

// Duplicate copies a project into a fresh planning record starting at the
// given date. The copy is renamed with a "(Copy)" suffix, its status resets
// to PLANNED, and the source project's interventions are re-created against
// the copy with their date moved to the new start date.
func (s *ProjectService) Duplicate(ctx context.Context, id, newStartDate string) (*model.Project, error) {
	if err := validateRequired(map[string]string{"startDate": newStartDate}); err != nil {
		return nil, err
	}

	source, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	copy := *source
	copy.ID = uuid.NewString()
	copy.Name = source.Name + " (Copy)"
	copy.StartDate = newStartDate
	copy.Status = model.ProjectPlanned
	copy.CreatedAt = time.Now().UTC()
	if err := s.repo.Insert(ctx, &copy); err != nil {
		return nil, err
	}

	sourceInterventions, err := s.interventions.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, intervention := range sourceInterventions {
		newID, err := s.interventions.NextID(ctx)
		if err != nil {
			return nil, err
		}
		duplicated := intervention
		duplicated.ID = newID
		duplicated.ProjectID = copy.ID
		duplicated.Date = newStartDate
		duplicated.CreatedAt = time.Now().UTC()
		if err := s.interventions.Insert(ctx, &duplicated); err != nil {
			return nil, err
		}
	}

	if err := s.hydrate(ctx, &copy); err != nil {
		return nil, err
	}
	return &copy, nil
}

// Import appends one project per spreadsheet row. A row may carry an embedded
// first intervention (interventionTitle and related columns), created against
// the new project in state pending.
func (s *ProjectService) Import(ctx context.Context, rows []map[string]string) (*ImportReport, error) {
	report := &ImportReport{}
	for idx, row := range rows {
		if row["name"] == "" || row["clientId"] == "" {
			report.skip(idx+1, "name and clientId are required")
			continue
		}

		project := &model.Project{
			ID:            uuid.NewString(),
			Name:          row["name"],
			Description:   row["description"],
			ClientID:      row["clientId"],
			ClientName:    row["clientName"],
			StartDate:     row["startDate"],
			EndDate:       row["endDate"],
			Status:        model.ProjectPlanned,
			Interventions: []model.Intervention{},
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, project); err != nil {
			report.skip(idx+1, err.Error())
			continue
		}

		if row["interventionTitle"] != "" {
			if err := s.importIntervention(ctx, project, row); err != nil {
				report.skip(idx+1, fmt.Sprintf("project created, intervention failed: %v", err))
				continue
			}
		}
		report.Imported++
	}
	return report, nil
}

func (s *ProjectService) importIntervention(ctx context.Context, project *model.Project, row map[string]string) error {
	id, err := s.interventions.NextID(ctx)
	if err != nil {
		return err
	}
	intervention := &model.Intervention{
		ID:          id,
		Title:       row["interventionTitle"],
		Description: row["interventionDescription"],
		Date:        row["interventionDate"],
		Status:      model.InterventionPending,
		Location: model.Location{
			Address:    row["address"],
			City:       row["city"],
			PostalCode: row["postalCode"],
			Latitude:   float64(model.ParseNumeric(row["latitude"])),
			Longitude:  float64(model.ParseNumeric(row["longitude"])),
		},
		ClientID:        project.ClientID,
		ClientName:      project.ClientName,
		SiteName:        row["city"],
		SiteContact:     model.SiteContact{Phone: row["phone"]},
		Technicians:     []model.TechnicianAssignment{},
		Expenses:        []model.Expense{},
		TrackingNumbers: []string{},
		Attachments:     []string{},
		ProjectID:       project.ID,
		CreatedAt:       time.Now().UTC(),
	}
	return s.interventions.Insert(ctx, intervention)
}

func (s *ProjectService) hydrate(ctx context.Context, project *model.Project) error {
	interventions, err := s.interventions.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	project.Interventions = interventions
	return nil
}
