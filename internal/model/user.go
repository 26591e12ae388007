package model

import "time"

type UserRole string

const (
	RoleAdmin         UserRole = "ADMIN"
	RoleDispatcher    UserRole = "DISPATCHER"
	RoleTechnician    UserRole = "TECHNICIAN"
	RoleSubcontractor UserRole = "SUBCONTRACTOR"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   UserRole
}

func (p Principal) IsAdmin() bool      { return p.Role == RoleAdmin }
func (p Principal) IsDispatcher() bool { return p.Role == RoleDispatcher }
func (p Principal) IsTechnician() bool { return p.Role == RoleTechnician }
