package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a catalog entry managed through the admin panel.
// Destinations are global — not owned by any user or trip. Trips reference
// destinations by free-text name only, so catalog edits never touch trips.
type Destination struct {
	ID          uuid.UUID
	Name        string
	Location    string
	Price       float64
	Days        int
	Description string
	ImageURL    string
	Amenities   []string
	Featured    bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
