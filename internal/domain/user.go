package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the service layer; handlers expose only ID, Name, and Email.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
