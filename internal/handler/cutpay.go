package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/service"
)

// createCutPayRequest is the body for POST /api/cut-pay-requests.
type createCutPayRequest struct {
	DriverID       uuid.UUID `json:"driver_id"`
	RequestType    string    `json:"request_type"`
	HoursRequested *float64  `json:"hours_requested,omitempty"`
	MilesRequested *float64  `json:"miles_requested,omitempty"`
	TrailerConfig  string    `json:"trailer_config,omitempty"`
	Reason         string    `json:"reason,omitempty"`
}

// CreateCutPayRequest handles POST /api/cut-pay-requests.
func (s *Server) CreateCutPayRequest(w http.ResponseWriter, r *http.Request) {
	var req createCutPayRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.cutpay.Create(r.Context(), service.CreateCutPayInput{
		DriverID:       req.DriverID,
		RequestType:    domain.CutPayType(req.RequestType),
		HoursRequested: req.HoursRequested,
		MilesRequested: req.MilesRequested,
		TrailerConfig:  req.TrailerConfig,
		Reason:         req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListCutPayRequests handles GET /api/drivers/{driverID}/cut-pay-requests.
// Supports ?sinceDays= (default 7, max 90).
func (s *Server) ListCutPayRequests(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathUUID(r, "driverID")
	if err != nil {
		badRequest(w, "invalid driver id")
		return
	}
	sinceDays, err := queryInt(r, "sinceDays")
	if err != nil {
		badRequest(w, "invalid sinceDays")
		return
	}

	reqs, err := s.cutpay.ListByDriver(r.Context(), driverID, sinceDays)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": reqs})
}
