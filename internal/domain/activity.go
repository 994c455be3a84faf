package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single planned event attached to a trip on a specific date.
// Time is an optional clock time in "15:04" form with no date component.
// EstimatedCost is nil when the user gave no estimate; cost aggregation
// treats nil as zero.
type Activity struct {
	ID            uuid.UUID
	TripID        uuid.UUID
	Date          time.Time // date only, midnight UTC; must lie within the trip's range
	Time          string    // "15:04" or empty
	Label         string    // required, non-empty
	Location      string
	Notes         string
	EstimatedCost *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ActivityPatch carries a partial update for an activity. Nil fields are left
// unchanged; non-nil fields overwrite. Pointer-to-pointer for EstimatedCost
// distinguishes "leave alone" (nil) from "clear the estimate" (*nil).
type ActivityPatch struct {
	Date          *time.Time
	Time          *string
	Label         *string
	Location      *string
	Notes         *string
	EstimatedCost **float64
}

// Apply returns a copy of a with the patch's non-nil fields applied.
func (p ActivityPatch) Apply(a Activity) Activity {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Label != nil {
		a.Label = *p.Label
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.EstimatedCost != nil {
		a.EstimatedCost = *p.EstimatedCost
	}
	return a
}
