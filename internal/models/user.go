package models

import "time"

// User is an account owning competitors.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CompanyName    string    `json:"company_name"`
	CreatedAt      time.Time `json:"created_at"`
}
