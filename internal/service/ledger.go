package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
)

// ledger performs the claim/release half of a trip transition against
// transaction-scoped repos. All claims for one transition run inside one
// transaction, so the first failed claim (a unit or driver that is not
// AVAILABLE) aborts the whole operation and nothing is left half-claimed.
//
// It is unexported on purpose: only the trip lifecycle service may move
// equipment and driver availability.
type ledger struct {
	r repo.Repos
}

// claimAll claims the trip's tractor, trailers, dollies, and driver(s).
// The first unavailable resource fails the whole call with
// domain.ErrResourceUnavailable naming that resource.
func (l ledger) claimAll(ctx context.Context, trip domain.Trip) error {
	if trip.TractorID != nil {
		if _, err := l.r.Equipment.Claim(ctx, *trip.TractorID, domain.EquipmentTractor); err != nil {
			return err
		}
	}
	for _, id := range trip.TrailerIDs {
		if _, err := l.r.Equipment.Claim(ctx, id, domain.EquipmentTrailer); err != nil {
			return err
		}
	}
	for _, id := range trip.DollyIDs {
		if _, err := l.r.Equipment.Claim(ctx, id, domain.EquipmentDolly); err != nil {
			return err
		}
	}
	if err := l.claimDrivers(ctx, trip); err != nil {
		return err
	}
	return nil
}

// claimDrivers claims the primary driver and, when assigned, the team driver.
// Both are physically committed to the trip, so both go DRIVING.
func (l ledger) claimDrivers(ctx context.Context, trip domain.Trip) error {
	if _, err := l.r.Drivers.Claim(ctx, trip.DriverID); err != nil {
		return err
	}
	if trip.TeamDriverID != nil {
		if _, err := l.r.Drivers.Claim(ctx, *trip.TeamDriverID); err != nil {
			return err
		}
	}
	return nil
}

// releaseAll returns every unit and driver held by the trip to AVAILABLE.
// Release is idempotent per resource, so an arrival retried after a commit
// failure cannot wedge anything.
func (l ledger) releaseAll(ctx context.Context, trip domain.Trip) error {
	if trip.TractorID != nil {
		if err := l.r.Equipment.Release(ctx, *trip.TractorID); err != nil {
			return err
		}
	}
	for _, id := range trip.TrailerIDs {
		if err := l.r.Equipment.Release(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range trip.DollyIDs {
		if err := l.r.Equipment.Release(ctx, id); err != nil {
			return err
		}
	}
	if err := l.r.Drivers.Release(ctx, trip.DriverID); err != nil {
		return err
	}
	if trip.TeamDriverID != nil {
		if err := l.r.Drivers.Release(ctx, *trip.TeamDriverID); err != nil {
			return err
		}
	}
	return nil
}

// requireAssigned enforces the dispatch/arrive authorization rule: the acting
// driver must be the trip's primary or team driver.
func requireAssigned(trip domain.Trip, driverID uuid.UUID) error {
	if !trip.IsAssignedDriver(driverID) {
		return fmt.Errorf("%w: driver %s is not assigned to trip %s",
			domain.ErrForbidden, driverID, trip.TripNumber)
	}
	return nil
}
