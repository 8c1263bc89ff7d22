package project

import (
	"time"

	"github.com/google/uuid"
)

// Project groups property metadata that generated content can be attached to.
type Project struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address,omitempty"`
	PropertyType string    `json:"property_type,omitempty"`
	Bedrooms     string    `json:"bedrooms,omitempty"`
	Bathrooms    string    `json:"bathrooms,omitempty"`
	SquareFeet   string    `json:"square_feet,omitempty"`
	Price        string    `json:"price,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
