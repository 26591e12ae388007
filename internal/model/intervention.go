package model

import "time"

type InterventionStatus string

const (
	InterventionPending    InterventionStatus = "pending"
	InterventionInProgress InterventionStatus = "in_progress"
	InterventionCompleted  InterventionStatus = "completed"
)

type TechnicianRole string

const (
	RolePrimary   TechnicianRole = "primary"
	RoleSecondary TechnicianRole = "secondary"
)

type Location struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	PostalCode string  `json:"postalCode"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type SiteContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// TechnicianAssignment is a value object attached to an intervention.
// BuyPrice/SellPrice are optional, but required for subcontractors.
type TechnicianAssignment struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Role            TechnicianRole `json:"role"`
	IsSubcontractor bool           `json:"isSubcontractor"`
	BuyPrice        *float64       `json:"buyPrice,omitempty"`
	SellPrice       *float64       `json:"sellPrice,omitempty"`
}

type Expense struct {
	Type        string  `json:"type"`
	Amount      Numeric `json:"amount"`
	Description string  `json:"description,omitempty"`
}

type Material struct {
	Designation  string `json:"designation"`
	SerialNumber string `json:"serialNumber"`
}

// ClosureData is captured when an intervention is marked completed.
type ClosureData struct {
	CompletionNotes string     `json:"completionNotes"`
	ArrivalTime     string     `json:"arrivalTime"`
	DepartureTime   string     `json:"departureTime"`
	SignatoryName   string     `json:"signatoryName"`
	Signature       string     `json:"signature,omitempty"`
	Materials       []Material `json:"materials,omitempty"`
	NeedsFollowUp   bool       `json:"needsFollowUp"`
	FollowUpNotes   string     `json:"followUpNotes,omitempty"`
}

type InvoiceProgress string

const (
	InvoicePendingBilling InvoiceProgress = "pending"
	InvoiceSubmitted      InvoiceProgress = "submitted"
	InvoicePaid           InvoiceProgress = "paid"
)

// Intervention is a single field-service job tied to a client and site.
// The financial figures are rollups over the technician list and the
// expense list; see service.InterventionService for the rules.
type Intervention struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Date            string                 `json:"date"`
	Time            string                 `json:"time"`
	Duration        int                    `json:"duration"`
	Status          InterventionStatus     `json:"status"`
	Location        Location               `json:"location"`
	ClientID        string                 `json:"clientId"`
	ClientName      string                 `json:"client"`
	SiteName        string                 `json:"siteName"`
	SiteContact     SiteContact            `json:"siteContact"`
	Technicians     []TechnicianAssignment `json:"technicians"`
	Expenses        []Expense              `json:"expenses"`
	BuyPrice        Numeric                `json:"buyPrice"`
	SellPrice       Numeric                `json:"sellPrice"`
	TotalExpenses   Numeric                `json:"totalExpenses"`
	TotalAmount     Numeric                `json:"totalAmount"`
	Closure         *ClosureData           `json:"closureData,omitempty"`
	TrackingNumbers []string               `json:"trackingNumbers"`
	Attachments     []string               `json:"attachments"`
	ProjectID       string                 `json:"projectId,omitempty"`
	ServiceID       string                 `json:"serviceId,omitempty"`
	InvoiceNumber   string                 `json:"invoiceNumber,omitempty"`
	InvoiceStatus   InvoiceProgress        `json:"invoiceStatus,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// PrimaryTechnician returns the lead assignment, or nil when none is set.
func (i *Intervention) PrimaryTechnician() *TechnicianAssignment {
	for idx := range i.Technicians {
		if i.Technicians[idx].Role == RolePrimary {
			return &i.Technicians[idx]
		}
	}
	return nil
}
