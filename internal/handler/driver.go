package handler

import (
	"net/http"
)

// verifyDriverRequest is the body for POST /api/drivers/verify.
type verifyDriverRequest struct {
	DriverNumber string `json:"driver_number"`
	PhoneLast4   string `json:"phone_last4"`
}

// VerifyDriver handles POST /api/drivers/verify: the self-service identity
// check. A wrong phone suffix returns 401; an unknown or inactive driver
// number returns 404.
func (s *Server) VerifyDriver(w http.ResponseWriter, r *http.Request) {
	var req verifyDriverRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	ref, err := s.identity.VerifyDriver(r.Context(), req.DriverNumber, req.PhoneLast4)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// ListDriverTrips handles GET /api/drivers/{driverID}/trips.
// Supports ?sinceDays= (default 7, max 90).
func (s *Server) ListDriverTrips(w http.ResponseWriter, r *http.Request) {
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

	trips, err := s.trips.ListDriverTrips(r.Context(), driverID, sinceDays)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": trips})
}
