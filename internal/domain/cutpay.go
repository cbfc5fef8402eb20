package domain

import (
	"time"

	"github.com/google/uuid"
)

// CutPayType selects which quantity a cut pay request adjusts.
type CutPayType string

const (
	CutPayHours CutPayType = "HOURS"
	CutPayMiles CutPayType = "MILES"
)

// TrailerConfig describes the trailer combination the driver was pulling.
// An unrecognized value defaults to SINGLE at request creation.
type TrailerConfig string

const (
	TrailerSingle TrailerConfig = "SINGLE"
	TrailerDouble TrailerConfig = "DOUBLE"
	TrailerTriple TrailerConfig = "TRIPLE"
)

// NormalizeTrailerConfig maps an arbitrary input to a valid TrailerConfig,
// falling back to SINGLE on anything unrecognized.
func NormalizeTrailerConfig(s string) TrailerConfig {
	switch TrailerConfig(s) {
	case TrailerSingle, TrailerDouble, TrailerTriple:
		return TrailerConfig(s)
	}
	return TrailerSingle
}

// CutPayStatus is the review state of a cut pay request. This core only
// creates PENDING requests; review transitions belong to payroll.
type CutPayStatus string

const CutPayPending CutPayStatus = "PENDING"

// CutPayRequest is a driver-initiated pay adjustment request, independent of
// any trip. Exactly one of HoursRequested/MilesRequested is set, matching
// RequestType.
type CutPayRequest struct {
	ID             uuid.UUID     `json:"id"`
	DriverID       uuid.UUID     `json:"driver_id"`
	RequestType    CutPayType    `json:"request_type"`
	HoursRequested *float64      `json:"hours_requested,omitempty"`
	MilesRequested *float64      `json:"miles_requested,omitempty"`
	TrailerConfig  TrailerConfig `json:"trailer_config"`
	Reason         string        `json:"reason,omitempty"`
	Status         CutPayStatus  `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
}
