// Package handler implements the HTTP handlers for the dispatch API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (driver.go, trip.go, cutpay.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/service"
)

// IdentityServicer defines the verification operation the driver handler
// depends on. Defining interfaces here (in the consumer package) follows the
// Go convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type IdentityServicer interface {
	VerifyDriver(ctx context.Context, driverNumber, phoneLast4 string) (domain.DriverRef, error)
}

// TripServicer defines the trip lifecycle operations the trip handler
// depends on.
type TripServicer interface {
	CreateAndDispatch(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	Dispatch(ctx context.Context, tripID, driverID uuid.UUID, notes string, departedAt *time.Time) (domain.Trip, error)
	Arrive(ctx context.Context, tripID, driverID uuid.UUID, in service.ArrivalInput) (service.ArrivalResult, error)
	GetTrip(ctx context.Context, tripID uuid.UUID, driverID *uuid.UUID) (service.TripDetails, error)
	ListDriverTrips(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.Trip, error)
}

// CutPayServicer defines the cut pay operations the handler depends on.
type CutPayServicer interface {
	Create(ctx context.Context, in service.CreateCutPayInput) (domain.CutPayRequest, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.CutPayRequest, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	identity IdentityServicer
	trips    TripServicer
	cutpay   CutPayServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(identity IdentityServicer, trips TripServicer, cutpay CutPayServicer) *Server {
	return &Server{identity: identity, trips: trips, cutpay: cutpay}
}

// Routes mounts every API endpoint on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/drivers/verify", s.VerifyDriver)
		r.Get("/drivers/{driverID}/trips", s.ListDriverTrips)
		r.Get("/drivers/{driverID}/cut-pay-requests", s.ListCutPayRequests)

		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{tripID}", s.GetTrip)
		r.Post("/trips/{tripID}/dispatch", s.DispatchTrip)
		r.Post("/trips/{tripID}/arrive", s.ArriveTrip)

		r.Post("/cut-pay-requests", s.CreateCutPayRequest)
	})
}

// Health handles GET /health. It reports liveness only; database
// reachability is verified at startup.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
