package models

import (
	"time"
)

// Contact represents a person in a user's professional network
type Contact struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           *string   `json:"email"`
	Phone           *string   `json:"phone"`
	Company         *string   `json:"company"`
	Title           *string   `json:"title"`
	Website         *string   `json:"website"`
	LinkedinURL     *string   `json:"linkedinUrl"`
	Industry        *string   `json:"industry"`
	Specialty       *string   `json:"specialty"`
	Expertise       *string   `json:"expertise"`
	IdealCustomer   *string   `json:"idealCustomer"`
	ReputationScore *int      `json:"reputationScore"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
