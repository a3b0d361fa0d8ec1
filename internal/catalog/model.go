package catalog

import (
	"time"

	"github.com/gofrs/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	Image           string    `json:"image,omitempty" db:"image"`
	CategoryID      uuid.UUID `json:"category_id" db:"category_id"`
	CategoryName    string    `json:"category_name" db:"-"` // joined from categories
	PreparationTime int       `json:"preparation_time" db:"preparation_time"`
	Ingredients     string    `json:"ingredients,omitempty" db:"ingredients"`
	Available       bool      `json:"available" db:"available"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
