package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/service"
)

// createTripRequest is the body for POST /api/trips (self-service creation,
// which creates and immediately dispatches the trip).
type createTripRequest struct {
	DriverID        uuid.UUID   `json:"driver_id"`
	TeamDriverID    *uuid.UUID  `json:"team_driver_id,omitempty"`
	LoadsheetIDs    []uuid.UUID `json:"loadsheet_ids"`
	TractorID       *uuid.UUID  `json:"tractor_id,omitempty"`
	TrailerIDs      []uuid.UUID `json:"trailer_ids,omitempty"`
	DollyIDs        []uuid.UUID `json:"dolly_ids,omitempty"`
	IsOwnerOperator bool        `json:"is_owner_operator,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

// dispatchTripRequest is the body for POST /api/trips/{tripID}/dispatch.
type dispatchTripRequest struct {
	DriverID   uuid.UUID  `json:"driver_id"`
	Notes      string     `json:"notes,omitempty"`
	DepartedAt *time.Time `json:"departed_at,omitempty"`
}

// arriveTripRequest is the body for POST /api/trips/{tripID}/arrive.
type arriveTripRequest struct {
	DriverID  uuid.UUID  `json:"driver_id"`
	ArrivedAt *time.Time `json:"arrived_at,omitempty"`
	WaitStart *time.Time `json:"wait_start,omitempty"`
	WaitEnd   *time.Time `json:"wait_end,omitempty"`
	Notes     string     `json:"notes,omitempty"`

	IssueType        string `json:"issue_type,omitempty"`
	IssueUnitNumber  string `json:"issue_unit_number,omitempty"`
	IssueDescription string `json:"issue_description,omitempty"`

	MoraleRating *int `json:"morale_rating,omitempty"`
}

// arriveTripResponse bundles everything a completed arrival produced.
type arriveTripResponse struct {
	Trip       domain.Trip                `json:"trip"`
	Report     domain.DriverTripReport    `json:"report"`
	Issue      *domain.EquipmentIssue     `json:"issue,omitempty"`
	Morale     *domain.DriverMoraleRating `json:"morale,omitempty"`
	Loadsheets []domain.Loadsheet         `json:"loadsheets"`
}

// tripDetailsResponse is a trip with its profile and attached loadsheets.
type tripDetailsResponse struct {
	Trip       domain.Trip            `json:"trip"`
	Profile    domain.LinehaulProfile `json:"profile"`
	Loadsheets []domain.Loadsheet     `json:"loadsheets"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.CreateAndDispatch(r.Context(), service.CreateTripInput{
		DriverID:        req.DriverID,
		TeamDriverID:    req.TeamDriverID,
		LoadsheetIDs:    req.LoadsheetIDs,
		TractorID:       req.TractorID,
		TrailerIDs:      req.TrailerIDs,
		DollyIDs:        req.DollyIDs,
		IsOwnerOperator: req.IsOwnerOperator,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

// GetTrip handles GET /api/trips/{tripID}. An optional ?driverId= enforces
// the assigned-driver authorization check.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var driverID *uuid.UUID
	if raw := r.URL.Query().Get("driverId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid driverId")
			return
		}
		driverID = &id
	}

	details, err := s.trips.GetTrip(r.Context(), tripID, driverID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tripDetailsResponse{
		Trip:       details.Trip,
		Profile:    details.Profile,
		Loadsheets: details.Loadsheets,
	})
}

// DispatchTrip handles POST /api/trips/{tripID}/dispatch.
func (s *Server) DispatchTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req dispatchTripRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Dispatch(r.Context(), tripID, req.DriverID, req.Notes, req.DepartedAt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ArriveTrip handles POST /api/trips/{tripID}/arrive.
func (s *Server) ArriveTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		badRequest(w, "invalid trip id")
		return
	}

	var req arriveTripRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := s.trips.Arrive(r.Context(), tripID, req.DriverID, service.ArrivalInput{
		ArrivedAt:        req.ArrivedAt,
		WaitStart:        req.WaitStart,
		WaitEnd:          req.WaitEnd,
		Notes:            req.Notes,
		IssueType:        req.IssueType,
		IssueUnitNumber:  req.IssueUnitNumber,
		IssueDescription: req.IssueDescription,
		MoraleRating:     req.MoraleRating,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, arriveTripResponse{
		Trip:       result.Trip,
		Report:     result.Report,
		Issue:      result.Issue,
		Morale:     result.Morale,
		Loadsheets: result.Loadsheets,
	})
}
