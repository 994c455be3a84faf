package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per activity, with trip fields
// repeated for every activity on that trip. Trips with no activities yield
// one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields — repeated for every activity on the trip.
	TripID          string
	TripDestination string
	TripStartDate   string // "2006-01-02" formatted date
	TripEndDate     string

	// Activity fields — zero values when the trip has no activities.
	ActivityDate  string // "2006-01-02", empty on activity-less trips
	ActivityTime  string
	Label         string
	Location      string
	Notes         string
	EstimatedCost *float64
}
