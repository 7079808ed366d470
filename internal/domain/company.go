package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company record
type Company struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Industry      Industry  `json:"industry"`
	Email         string    `json:"email,omitempty"`
	IsActive      bool      `json:"isActive"`
	EmployeeCount int       `json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Related data (populated on include)
	Users []User `json:"users,omitempty"`
}

// CompanyInput represents input for creating a company
type CompanyInput struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Industry      Industry `json:"industry" validate:"required"`
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	EmployeeCount int      `json:"employeeCount,omitempty" validate:"omitempty,gte=0"`
}

// CompanyUpdateInput represents input for updating a company
type CompanyUpdateInput struct {
	Name          *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Industry      *Industry `json:"industry,omitempty"`
	Email         *string   `json:"email,omitempty" validate:"omitempty,email"`
	IsActive      *bool     `json:"isActive,omitempty"`
	EmployeeCount *int      `json:"employeeCount,omitempty" validate:"omitempty,gte=0"`
}
