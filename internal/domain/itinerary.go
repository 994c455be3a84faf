package domain

import (
	"sort"
	"time"
)

// DayPlan is one date of an itinerary with its activities in insertion order.
type DayPlan struct {
	Date       time.Time
	Activities []Activity
}

// Itinerary is the date-grouped projection of a trip's activities, ordered by
// date ascending. It is recomputed from the authoritative activity set on
// every read; nothing here is cached.
type Itinerary struct {
	Days      []DayPlan
	TotalCost float64
}

// FeedActivity is an activity joined with its owning trip's destination,
// used by the cross-trip feed.
type FeedActivity struct {
	Activity
	Destination string
}

// FeedGroup is all of one destination's activities grouped by date, ordered
// by date ascending within the destination.
type FeedGroup struct {
	Destination string
	Days        []DayPlan
}

// GroupByDate groups activities by calendar date, preserving the input order
// within each date. Dates with no activities never appear: removing the last
// activity of a date removes that date's group on the next read.
// The returned days are sorted by date ascending.
func GroupByDate(activities []Activity) []DayPlan {
	byDate := make(map[time.Time][]Activity)
	for _, a := range activities {
		d := truncateToDate(a.Date)
		byDate[d] = append(byDate[d], a)
	}

	days := make([]DayPlan, 0, len(byDate))
	for d, acts := range byDate {
		days = append(days, DayPlan{Date: d, Activities: acts})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// GroupByDestinationThenDate builds the two-level cross-trip projection:
// destination first, then date within each destination. Destinations are
// ordered alphabetically so the feed is stable across requests.
func GroupByDestinationThenDate(activities []FeedActivity) []FeedGroup {
	byDest := make(map[string][]Activity)
	for _, a := range activities {
		byDest[a.Destination] = append(byDest[a.Destination], a.Activity)
	}

	dests := make([]string, 0, len(byDest))
	for d := range byDest {
		dests = append(dests, d)
	}
	sort.Strings(dests)

	groups := make([]FeedGroup, 0, len(dests))
	for _, d := range dests {
		groups = append(groups, FeedGroup{Destination: d, Days: GroupByDate(byDest[d])})
	}
	return groups
}

// TotalCost sums the estimated costs over the given activities, treating a
// nil estimate as zero. The result is order-independent and 0 for an empty
// slice.
func TotalCost(activities []Activity) float64 {
	var sum float64
	for _, a := range activities {
		if a.EstimatedCost != nil {
			sum += *a.EstimatedCost
		}
	}
	return sum
}

// FormatDisplayDate renders a date in the long human-readable form used by
// the itinerary views, e.g. "Tuesday, January 1, 2025". Locale is fixed to
// English.
func FormatDisplayDate(date time.Time) string {
	return date.Format("Monday, January 2, 2006")
}
