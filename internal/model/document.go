package model

import "time"

// AdminDocument is a company compliance document (KBIS, insurance, ...)
// tracked with an expiry date.
type AdminDocument struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	ExpiryDate string    `json:"expiryDate"`
	File       string    `json:"file"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
