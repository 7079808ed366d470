package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user belonging to a company
type User struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"companyId"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Related data (populated on include)
	Company *Company `json:"company,omitempty"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserInput represents input for creating a user
type UserInput struct {
	CompanyID uuid.UUID `json:"companyId" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	FirstName string    `json:"firstName" validate:"required,max=100"`
	LastName  string    `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Role      UserRole  `json:"role" validate:"required"`
	Password  string    `json:"password" validate:"required,min=8"`
}

// UserUpdateInput represents input for updating a user
type UserUpdateInput struct {
	Email     *string   `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string   `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string   `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Role      *UserRole `json:"role,omitempty"`
	IsActive  *bool     `json:"isActive,omitempty"`
	Password  *string   `json:"password,omitempty" validate:"omitempty,min=8"`
}
