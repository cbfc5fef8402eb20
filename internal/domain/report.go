package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DriverTripReport captures driver-submitted operational telemetry for one
// arrival event. A trip owns its report; there is one per arrival.
type DriverTripReport struct {
	ID          uuid.UUID  `json:"id"`
	TripID      uuid.UUID  `json:"trip_id"`
	DriverID    uuid.UUID  `json:"driver_id"`
	WaitStart   *time.Time `json:"wait_start,omitempty"`
	WaitEnd     *time.Time `json:"wait_end,omitempty"`
	WaitMinutes *int       `json:"wait_minutes,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	ArrivalTime time.Time  `json:"arrival_time"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WaitMinutesBetween converts a wait-time window to whole minutes,
// rounding to the nearest minute.
func WaitMinutesBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Seconds() / 60))
}

// EquipmentIssue is an optional child of an arrival event, recorded only
// when the driver reports a problem with a specific unit.
type EquipmentIssue struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	IssueType   string    `json:"issue_type"`
	UnitNumber  string    `json:"unit_number"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MoraleRatingMin and MoraleRatingMax bound a valid morale rating.
const (
	MoraleRatingMin = 1
	MoraleRatingMax = 5
)

// DriverMoraleRating is an optional child of an arrival event: a 1–5
// self-reported morale score. At most one exists per trip.
type DriverMoraleRating struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	DriverID  uuid.UUID `json:"driver_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
