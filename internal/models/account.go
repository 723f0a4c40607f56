package models

import (
	"time"

	"github.com/google/uuid"
)

type Account struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        string    `json:"role"` // see rbac package
	TotalPoints int64     `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
}
