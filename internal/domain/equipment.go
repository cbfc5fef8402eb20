package domain

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentKind distinguishes the three disjoint equipment pools.
type EquipmentKind string

const (
	EquipmentTractor EquipmentKind = "TRACTOR"
	EquipmentTrailer EquipmentKind = "TRAILER"
	EquipmentDolly   EquipmentKind = "DOLLY"
)

// EquipmentStatus is the availability state of an equipment unit.
// Only AVAILABLE units can be claimed; OUT_OF_SERVICE units are parked for
// maintenance and are never claimable.
type EquipmentStatus string

const (
	EquipmentAvailable    EquipmentStatus = "AVAILABLE"
	EquipmentInTransit    EquipmentStatus = "IN_TRANSIT"
	EquipmentOutOfService EquipmentStatus = "OUT_OF_SERVICE"
)

// EquipmentUnit is a single tractor, trailer, or dolly. Units outlive any
// single trip; a trip holds a non-owning reference while it has the unit
// claimed. Status is written only by the resource ledger.
type EquipmentUnit struct {
	ID         uuid.UUID       `json:"id"`
	UnitNumber string          `json:"unit_number"`
	Kind       EquipmentKind   `json:"kind"`
	Status     EquipmentStatus `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
