package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip. The state machine is
// monotonic: a trip only ever moves forward, and ARRIVED is terminal.
type TripStatus string

const (
	TripAssigned   TripStatus = "ASSIGNED"
	TripDispatched TripStatus = "DISPATCHED"
	TripInTransit  TripStatus = "IN_TRANSIT"
	TripArrived    TripStatus = "ARRIVED"
)

// tripTransitions is the directed graph of legal trip status changes.
// Terminal states map to an empty set.
var tripTransitions = map[TripStatus][]TripStatus{
	TripAssigned:   {TripDispatched, TripInTransit},
	TripDispatched: {TripInTransit},
	TripInTransit:  {TripArrived},
	TripArrived:    {},
}

// CanTransition reports whether from → to is a legal trip status change.
func CanTransition(from, to TripStatus) bool {
	for _, s := range tripTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionError builds the ErrInvalidTransition for a trip that is not in
// the state a transition requires. The message names the trip, its current
// state, and the required source state(s) so the edge can render it directly.
func TransitionError(tripNumber string, current TripStatus, required ...TripStatus) error {
	return fmt.Errorf("%w: trip %s is %s, requires %v", ErrInvalidTransition, tripNumber, current, required)
}

// Trip is one dispatched transport leg between two terminals, with assigned
// driver(s) and equipment. Trips are never deleted — they form the audit
// trail of linehaul operations.
type Trip struct {
	ID           uuid.UUID  `json:"id"`
	TripNumber   string     `json:"trip_number"`
	ProfileID    uuid.UUID  `json:"profile_id"`
	Status       TripStatus `json:"status"`
	DriverID     uuid.UUID  `json:"driver_id"`
	TeamDriverID *uuid.UUID `json:"team_driver_id,omitempty"`

	// TractorID and the trailer/dolly lists are non-owning references: the
	// units' lifecycle is independent and outlives any single trip.
	TractorID  *uuid.UUID  `json:"tractor_id,omitempty"`
	TrailerIDs []uuid.UUID `json:"trailer_ids,omitempty"` // at most 3, in hook order
	DollyIDs   []uuid.UUID `json:"dolly_ids,omitempty"`   // at most 2

	DispatchDate    time.Time  `json:"dispatch_date"`
	ActualDeparture *time.Time `json:"actual_departure,omitempty"`
	ActualArrival   *time.Time `json:"actual_arrival,omitempty"`
	IsOwnerOperator bool       `json:"is_owner_operator"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsAssignedDriver reports whether driverID is the trip's primary or team
// driver. Dispatch and arrival are forbidden to anyone else.
func (t Trip) IsAssignedDriver(driverID uuid.UUID) bool {
	if t.DriverID == driverID {
		return true
	}
	return t.TeamDriverID != nil && *t.TeamDriverID == driverID
}

// TripNumberFor formats a trip number: the UTC date of the creation moment
// as YYYYMMDD followed by a 3-digit zero-padded sequence.
func TripNumberFor(createdAt time.Time, seq int) string {
	return fmt.Sprintf("%s%03d", createdAt.UTC().Format("20060102"), seq)
}

// TripNumberPrefix returns the YYYYMMDD prefix for the UTC date of t,
// used to scope the sequence lookup during trip-number allocation.
func TripNumberPrefix(t time.Time) string {
	return t.UTC().Format("20060102")
}
