package model

import "time"

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// Project groups interventions for a client over a date range. Interventions
// reference the project by id; the list here is hydrated on read.
type Project struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	ClientID      string         `json:"clientId"`
	ClientName    string         `json:"clientName"`
	StartDate     string         `json:"startDate"`
	EndDate       string         `json:"endDate,omitempty"`
	Status        ProjectStatus  `json:"status"`
	Interventions []Intervention `json:"interventions"`
	CreatedAt     time.Time      `json:"createdAt"`
}
