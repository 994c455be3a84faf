// Package handler implements the HTTP handlers for the Travel Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/catalog"
	"github.com/jdelgad/travel-planner/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// ActivityServicer defines the business operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, userID, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error)
	Delete(ctx context.Context, userID, activityID uuid.UUID) error
}

// ItineraryServicer defines the projection operations the read-side handlers depend on.
type ItineraryServicer interface {
	Itinerary(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, domain.Itinerary, error)
	Feed(ctx context.Context, userID uuid.UUID) ([]domain.FeedGroup, error)
}

// AuthServicer defines the account operations the auth handlers depend on.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// CatalogStore defines the observable destination store the catalog handlers
// depend on. It is satisfied by *catalog.Store.
type CatalogStore interface {
	catalog.DestinationServicer
	Subscribe() (<-chan catalog.Event, func())
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds every handler dependency. Methods live in domain-specific
// files but all operate on this struct.
type Server struct {
	auth        AuthServicer
	trips       TripServicer
	activities  ActivityServicer
	itineraries ItineraryServicer
	export      ExportServicer
	catalog     CatalogStore
	openapi     []byte
}

// NewServer constructs the Server with all its dependencies.
// The openapi bytes are served verbatim at /openapi.yaml; pass nil to disable.
func NewServer(
	auth AuthServicer,
	trips TripServicer,
	activities ActivityServicer,
	itineraries ItineraryServicer,
	export ExportServicer,
	catalogStore CatalogStore,
	openapi []byte,
) *Server {
	return &Server{
		auth:        auth,
		trips:       trips,
		activities:  activities,
		itineraries: itineraries,
		export:      export,
		catalog:     catalogStore,
		openapi:     openapi,
	}
}

// Routes assembles the full route table. requireAuth guards everything that
// needs an authenticated user; the auth endpoints, catalog reads, and health
// probe stay open.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/reset-password", s.ResetPassword)

		r.Get("/destinations", s.ListDestinations)
		r.Get("/destinations/events", s.DestinationEvents)
		r.Get("/destinations/{destinationID}", s.GetDestination)
		r.Post("/destinations", s.CreateDestination)
		r.Put("/destinations/{destinationID}", s.UpdateDestination)
		r.Delete("/destinations/{destinationID}", s.DeleteDestination)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/trips", s.CreateTrip)
			r.Get("/trips", s.ListTrips)
			r.Get("/trips/{tripID}", s.GetTrip)
			r.Delete("/trips/{tripID}", s.DeleteTrip)
			r.Get("/trips/{tripID}/itinerary", s.GetItinerary)

			r.Post("/trips/{tripID}/activities", s.CreateActivity)
			r.Get("/trips/{tripID}/activities", s.ListActivities)
			r.Patch("/activities/{activityID}", s.UpdateActivity)
			r.Delete("/activities/{activityID}", s.DeleteActivity)

			r.Get("/feed", s.GetFeed)
			r.Get("/export", s.GetExport)
		})
	})

	return r
}
