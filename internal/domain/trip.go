// Package domain contains the core data types for the Travel Planner application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransportMode is an enumerated travel-method tag attached to a trip.
type TransportMode string

// The full set of transport modes a trip may carry.
const (
	TransportFlight TransportMode = "flight"
	TransportTrain  TransportMode = "train"
	TransportCar    TransportMode = "car"
)

// ValidTransportMode reports whether m is one of the known modes.
func ValidTransportMode(m TransportMode) bool {
	switch m {
	case TransportFlight, TransportTrain, TransportCar:
		return true
	}
	return false
}

// Trip represents a user's planned journey to a destination.
// A trip is the top-level aggregate; activities belong to a trip and are
// removed with it. Trips are immutable after creation except for deletion.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Destination string
	StartDate   time.Time // date only, midnight UTC
	EndDate     time.Time // invariant: never before StartDate
	Budget      *float64  // nil means no limit
	Transport   []TransportMode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DateRange returns every calendar date of the trip from StartDate to
// EndDate inclusive. It is a pure function of the two date fields: calling
// it twice yields identical slices. A one-day trip yields a single date.
func (t Trip) DateRange() []time.Time {
	start := truncateToDate(t.StartDate)
	end := truncateToDate(t.EndDate)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// ContainsDate reports whether the given calendar date falls within the
// trip's [StartDate, EndDate] range, ignoring any time-of-day component.
func (t Trip) ContainsDate(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(t.StartDate)) && !d.After(truncateToDate(t.EndDate))
}

// truncateToDate strips the time-of-day component, normalizing to midnight UTC
// so date comparisons are insensitive to how the value was parsed.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
