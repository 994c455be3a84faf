// Package handler — export.go implements GET /api/export.
// Returns the user's trips and activities as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_destination", "trip_start_date", "trip_end_date",
	"activity_date", "activity_time", "label", "location", "notes", "estimated_cost",
}

// ExportRowResponse is one flat row of the JSON export.
type ExportRowResponse struct {
	TripID          string   `json:"trip_id"`
	TripDestination string   `json:"trip_destination"`
	TripStartDate   string   `json:"trip_start_date"`
	TripEndDate     string   `json:"trip_end_date"`
	ActivityDate    string   `json:"activity_date,omitempty"`
	ActivityTime    string   `json:"activity_time,omitempty"`
	Label           string   `json:"label,omitempty"`
	Location        string   `json:"location,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	EstimatedCost   *float64 `json:"estimated_cost,omitempty"`
}

// GetExport handles GET /api/export.
// It returns one row per activity, with trip fields repeated; trips without
// activities appear as a single row. Use ?format=csv for CSV, default JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := s.export.Export(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, rows)
		return
	}

	out := make([]ExportRowResponse, len(rows))
	for i, row := range rows {
		out[i] = ExportRowResponse(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSVExport streams the rows as CSV with an attachment disposition.
func writeCSVExport(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="travel-planner-export.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		cost := ""
		if r.EstimatedCost != nil {
			cost = strconv.FormatFloat(*r.EstimatedCost, 'f', 2, 64)
		}
		_ = cw.Write([]string{
			r.TripID, r.TripDestination, r.TripStartDate, r.TripEndDate,
			r.ActivityDate, r.ActivityTime, r.Label, r.Location, r.Notes, cost,
		})
	}
	cw.Flush()
}
