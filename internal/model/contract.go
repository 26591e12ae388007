package model

import "time"

type ContractType string

const (
	ContractMaintenance  ContractType = "MAINTENANCE"
	ContractSupport      ContractType = "SUPPORT"
	ContractProject      ContractType = "PROJECT"
	ContractIntervention ContractType = "INTERVENTION"
)

type ContractStatus string

const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractExpired   ContractStatus = "EXPIRED"
	ContractCancelled ContractStatus = "CANCELLED"
)

type ServiceUnit string

const (
	UnitHour ServiceUnit = "hour"
	UnitDay  ServiceUnit = "day"
	UnitUnit ServiceUnit = "unit"
)

type Service struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Quantity    float64     `json:"quantity"`
	Unit        ServiceUnit `json:"unit"`
	PriceID     string      `json:"priceId,omitempty"`
}

type Contract struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      ContractType   `json:"type"`
	ClientID  string         `json:"clientId"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate,omitempty"`
	Status    ContractStatus `json:"status"`
	Services  []Service      `json:"services"`
	CreatedAt time.Time      `json:"createdAt"`
}

type Price struct {
	ID           string      `json:"id"`
	ClientID     string      `json:"clientId"`
	ClientName   string      `json:"clientName"`
	ContractID   string      `json:"contractId,omitempty"`
	ContractName string      `json:"contractName,omitempty"`
	ServiceType  string      `json:"serviceType"`
	Description  string      `json:"description"`
	BuyPrice     Numeric     `json:"buyPrice"`
	SellPrice    Numeric     `json:"sellPrice"`
	Unit         ServiceUnit `json:"unit"`
	CreatedAt    time.Time   `json:"createdAt"`
}
