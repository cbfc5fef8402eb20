package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoadsheetStatus is the freight lifecycle state of a loadsheet.
type LoadsheetStatus string

const (
	LoadsheetOpen       LoadsheetStatus = "OPEN"
	LoadsheetLoading    LoadsheetStatus = "LOADING"
	LoadsheetClosed     LoadsheetStatus = "CLOSED"
	LoadsheetDispatched LoadsheetStatus = "DISPATCHED"
)

// Loadsheet is a freight manifest. Its trip attachment is revocable, not
// ownership: LinehaulTripID is set while the freight rides a trip and cleared
// on arrival, at which point the origin advances to the trip's destination so
// the same physical freight is immediately eligible as origin cargo for the
// next leg (leg chaining).
//
// Invariant: LinehaulTripID != nil ⇔ Status == DISPATCHED. A loadsheet is
// attached to at most one trip at any time.
type Loadsheet struct {
	ID                      uuid.UUID       `json:"id"`
	ManifestNumber          string          `json:"manifest_number"`
	OriginTerminalCode      string          `json:"origin_terminal_code"`
	DestinationTerminalCode *string         `json:"destination_terminal_code,omitempty"`
	Status                  LoadsheetStatus `json:"status"`

	// LinehaulName is the free-text linehaul description entered at loadsheet
	// creation, matched against profile code/name during self-service trip
	// creation.
	LinehaulName string `json:"linehaul_name,omitempty"`

	LinehaulTripID *uuid.UUID `json:"linehaul_trip_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
