package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row created by the sign-up flow.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
