package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/service"
)

// Function-field doubles for the servicer interfaces. Tests set only the
// methods they expect to be hit; an unexpected call panics.

type mockIdentityService struct {
	verifyDriver func(ctx context.Context, driverNumber, phoneLast4 string) (domain.DriverRef, error)
}

func (m *mockIdentityService) VerifyDriver(ctx context.Context, driverNumber, phoneLast4 string) (domain.DriverRef, error) {
	return m.verifyDriver(ctx, driverNumber, phoneLast4)
}

var _ IdentityServicer = (*mockIdentityService)(nil)

type mockTripService struct {
	createAndDispatch func(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	dispatch          func(ctx context.Context, tripID, driverID uuid.UUID, notes string, departedAt *time.Time) (domain.Trip, error)
	arrive            func(ctx context.Context, tripID, driverID uuid.UUID, in service.ArrivalInput) (service.ArrivalResult, error)
	getTrip           func(ctx context.Context, tripID uuid.UUID, driverID *uuid.UUID) (service.TripDetails, error)
	listDriverTrips   func(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.Trip, error)
}

func (m *mockTripService) CreateAndDispatch(ctx context.Context, in service.CreateTripInput) (domain.Trip, error) {
	return m.createAndDispatch(ctx, in)
}
func (m *mockTripService) Dispatch(ctx context.Context, tripID, driverID uuid.UUID, notes string, departedAt *time.Time) (domain.Trip, error) {
	return m.dispatch(ctx, tripID, driverID, notes, departedAt)
}
func (m *mockTripService) Arrive(ctx context.Context, tripID, driverID uuid.UUID, in service.ArrivalInput) (service.ArrivalResult, error) {
	return m.arrive(ctx, tripID, driverID, in)
}
func (m *mockTripService) GetTrip(ctx context.Context, tripID uuid.UUID, driverID *uuid.UUID) (service.TripDetails, error) {
	return m.getTrip(ctx, tripID, driverID)
}
func (m *mockTripService) ListDriverTrips(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.Trip, error) {
	return m.listDriverTrips(ctx, driverID, sinceDays)
}

var _ TripServicer = (*mockTripService)(nil)

type mockCutPayService struct {
	create       func(ctx context.Context, in service.CreateCutPayInput) (domain.CutPayRequest, error)
	listByDriver func(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.CutPayRequest, error)
}

func (m *mockCutPayService) Create(ctx context.Context, in service.CreateCutPayInput) (domain.CutPayRequest, error) {
	return m.create(ctx, in)
}
func (m *mockCutPayService) ListByDriver(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.CutPayRequest, error) {
	return m.listByDriver(ctx, driverID, sinceDays)
}

var _ CutPayServicer = (*mockCutPayService)(nil)

// doRequest mounts the full route table and performs one request against it,
// so tests exercise real chi routing and URL parameter extraction.
func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	srv.Routes(r)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// errorCode pulls the machine-readable code out of an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, decodeResponse(rec, &resp))
	return resp.Error.Code
}

func decodeResponse(rec *httptest.ResponseRecorder, dst any) error {
	return json.NewDecoder(rec.Body).Decode(dst)
}
