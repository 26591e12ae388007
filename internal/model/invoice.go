package model

import "time"

type InvoiceStatus string

// Invoice statuses keep the labels users see in the accounting screen.
const (
	InvoiceStatusWaiting InvoiceStatus = "En attente"
	InvoiceStatusSent    InvoiceStatus = "Envoyé"
	InvoiceStatusPaid    InvoiceStatus = "Payé"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusWaiting, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// Invoice is a monthly billing record keyed by period ("YYYY-MM").
type Invoice struct {
	ID                 string        `json:"id"`
	Period             string        `json:"period"`
	Amount             Numeric       `json:"amount"`
	Status             InvoiceStatus `json:"status"`
	UploadDate         string        `json:"uploadDate,omitempty"`
	Attachment         string        `json:"attachment,omitempty"`
	InterventionsCount int           `json:"interventionsCount"`
	CreatedAt          time.Time     `json:"createdAt"`
}

// AccountingStats is the dashboard block derived from invoices and
// interventions.
type AccountingStats struct {
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	MonthlyGrowth     float64 `json:"monthlyGrowth"`
	PaidInterventions int     `json:"paidInterventions"`
	PendingInvoices   int     `json:"pendingInvoices"`
	RecoveryRate      float64 `json:"recoveryRate"`
}
