package domain

import (
	"time"

	"github.com/google/uuid"
)

// LinehaulProfile is a named, reusable origin/destination terminal pairing
// with scheduling metadata. Profiles are owned by route management; this core
// only resolves them (by id, or by matching a loadsheet's free-text linehaul
// name against code or name).
type LinehaulProfile struct {
	ID                      uuid.UUID `json:"id"`
	Code                    string    `json:"code"`
	Name                    string    `json:"name"`
	OriginTerminalCode      string    `json:"origin_terminal_code"`
	DestinationTerminalCode string    `json:"destination_terminal_code"`

	// Scheduled departure/arrival as time-of-day strings ("HH:MM:SS"),
	// informational only.
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
