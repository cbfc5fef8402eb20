// Package domain contains the core data types for the trip dispatch service.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DriverStatus is the availability state of a driver.
// Mutated only by the resource ledger as a side effect of dispatch/arrival.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "AVAILABLE"
	DriverDriving   DriverStatus = "DRIVING"
)

// Driver is a linehaul driver. Drivers are created and retired by the fleet
// management side of the system; this core only reads them and flips their
// status between AVAILABLE and DRIVING.
type Driver struct {
	ID           uuid.UUID    `json:"id"`
	DriverNumber string       `json:"driver_number"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Phone        string       `json:"-"` // never serialized to clients
	Status       DriverStatus `json:"status"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Name returns the driver's display name.
func (d Driver) Name() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// PhoneLast4 returns the last four digits of the driver's phone number,
// considering digits only (formatting characters are stripped first).
// Returns "" if the stored phone has fewer than four digits.
func (d Driver) PhoneLast4() string {
	var digits []byte
	for i := 0; i < len(d.Phone); i++ {
		if c := d.Phone[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}

// DriverRef is the minimal driver identity returned by verification.
// It deliberately omits the phone number — the shared secret is never echoed.
type DriverRef struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	DriverNumber string       `json:"driver_number"`
	Status       DriverStatus `json:"status"`
}

// Ref builds the public reference for a driver.
func (d Driver) Ref() DriverRef {
	return DriverRef{
		ID:           d.ID,
		Name:         d.Name(),
		DriverNumber: d.DriverNumber,
		Status:       d.Status,
	}
}
