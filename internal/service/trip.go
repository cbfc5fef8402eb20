package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
)

// Limits on the equipment a single trip can pull.
const (
	MaxTrailers = 3
	MaxDollies  = 2
)

// tripNumberAttempts bounds retries when a concurrent creation lands on the
// same trip number; the unique index rejects the loser and the whole
// transaction is re-run with a freshly computed sequence.
const tripNumberAttempts = 3

// TripService owns the trip lifecycle: creation, dispatch, and arrival.
// Each transition runs as one unit of work via the TxRunner — resource
// claims/releases, the trip status write, loadsheet attach/detach, and
// report creation all commit or roll back together.
type TripService struct {
	reads repo.Repos    // pool-scoped, for non-transactional reads
	tx    repo.TxRunner // unit-of-work boundary for all writes
	now   func() time.Time
}

// NewTripService constructs a TripService. reads must be pool-scoped repos;
// tx supplies the transactional boundary for every mutating operation.
func NewTripService(reads repo.Repos, tx repo.TxRunner) *TripService {
	return &TripService{reads: reads, tx: tx, now: time.Now}
}

// CreateTripInput carries everything needed for self-service trip creation.
type CreateTripInput struct {
	DriverID        uuid.UUID
	TeamDriverID    *uuid.UUID
	LoadsheetIDs    []uuid.UUID
	TractorID       *uuid.UUID
	TrailerIDs      []uuid.UUID
	DollyIDs        []uuid.UUID
	IsOwnerOperator bool
	Notes           string
}

// ArrivalInput carries the driver-submitted details of an arrival event.
type ArrivalInput struct {
	ArrivedAt *time.Time // defaults to now
	WaitStart *time.Time
	WaitEnd   *time.Time
	Notes     string

	// An equipment issue is recorded only when all three fields are present.
	IssueType        string
	IssueUnitNumber  string
	IssueDescription string

	// MoraleRating, when supplied, must be 1–5.
	MoraleRating *int
}

// ArrivalResult is everything produced by a successful arrival.
type ArrivalResult struct {
	Trip       domain.Trip
	Report     domain.DriverTripReport
	Issue      *domain.EquipmentIssue
	Morale     *domain.DriverMoraleRating
	Loadsheets []domain.Loadsheet
}

// TripDetails is a trip together with its resolved profile and the
// loadsheets currently attached to it.
type TripDetails struct {
	Trip       domain.Trip
	Profile    domain.LinehaulProfile
	Loadsheets []domain.Loadsheet
}

// CreateAndDispatch creates a trip from the self-service channel and
// immediately dispatches it: the linehaul profile is resolved from the first
// loadsheet's free-text linehaul name, a date-scoped trip number is
// allocated, loadsheets are attached, and all equipment plus the driver(s)
// are claimed. The trip enters IN_TRANSIT with its departure stamped.
func (s *TripService) CreateAndDispatch(ctx context.Context, in CreateTripInput) (domain.Trip, error) {
	if err := validateCreate(in); err != nil {
		return domain.Trip{}, err
	}

	var created domain.Trip
	backoff := retry.WithMaxRetries(tripNumberAttempts, retry.NewConstant(25*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.tx.InTx(ctx, func(r repo.Repos) error {
			trip, err := s.createAndDispatchTx(ctx, r, in)
			if err != nil {
				return err
			}
			created = trip
			return nil
		})
		if isTripNumberConflict(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.CreateAndDispatch: %w", err)
	}
	return created, nil
}

// createAndDispatchTx is the transactional body of CreateAndDispatch.
func (s *TripService) createAndDispatchTx(ctx context.Context, r repo.Repos, in CreateTripInput) (domain.Trip, error) {
	first, err := r.Loadsheets.GetByID(ctx, in.LoadsheetIDs[0])
	if err != nil {
		return domain.Trip{}, err
	}

	profile, err := resolveProfile(ctx, r.Profiles, first.LinehaulName)
	if err != nil {
		return domain.Trip{}, err
	}

	now := s.now()
	seq, err := r.Trips.NextSequence(ctx, domain.TripNumberPrefix(now))
	if err != nil {
		return domain.Trip{}, err
	}

	departure := now
	trip := domain.Trip{
		TripNumber:      domain.TripNumberFor(now, seq),
		ProfileID:       profile.ID,
		Status:          domain.TripInTransit,
		DriverID:        in.DriverID,
		TeamDriverID:    in.TeamDriverID,
		TractorID:       in.TractorID,
		TrailerIDs:      in.TrailerIDs,
		DollyIDs:        in.DollyIDs,
		DispatchDate:    now,
		ActualDeparture: &departure,
		IsOwnerOperator: in.IsOwnerOperator,
		Notes:           in.Notes,
	}

	trip, err = r.Trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, err
	}

	for _, lsID := range in.LoadsheetIDs {
		if _, err := r.Loadsheets.Attach(ctx, lsID, trip.ID); err != nil {
			return domain.Trip{}, err
		}
	}

	if err := (ledger{r: r}).claimAll(ctx, trip); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

// Dispatch advances a pre-assigned trip to IN_TRANSIT, claiming its
// equipment and driver(s). The caller must be the trip's primary or team
// driver, and the trip must be in ASSIGNED or DISPATCHED.
func (s *TripService) Dispatch(ctx context.Context, tripID, driverID uuid.UUID, notes string, departedAt *time.Time) (domain.Trip, error) {
	departure := s.now()
	if departedAt != nil {
		departure = *departedAt
	}

	var dispatched domain.Trip
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if err := requireAssigned(trip, driverID); err != nil {
			return err
		}

		trip, err = r.Trips.MarkInTransit(ctx, tripID, departure, notes)
		if err != nil {
			return err
		}

		if err := (ledger{r: r}).claimAll(ctx, trip); err != nil {
			return err
		}

		dispatched = trip
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Dispatch: %w", err)
	}
	return dispatched, nil
}

// Arrive completes a trip: status → ARRIVED, every claimed unit and driver
// returned to AVAILABLE, attached loadsheets detached and advanced to the
// arrival terminal, and the driver's trip report (plus optional equipment
// issue and morale rating) recorded. One transaction, all or nothing.
func (s *TripService) Arrive(ctx context.Context, tripID, driverID uuid.UUID, in ArrivalInput) (ArrivalResult, error) {
	if err := validateArrival(in); err != nil {
		return ArrivalResult{}, err
	}

	arrivedAt := s.now()
	if in.ArrivedAt != nil {
		arrivedAt = *in.ArrivedAt
	}

	var result ArrivalResult
	err := s.tx.InTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if err := requireAssigned(trip, driverID); err != nil {
			return err
		}

		trip, err = r.Trips.MarkArrived(ctx, tripID, arrivedAt)
		if err != nil {
			return err
		}

		if err := (ledger{r: r}).releaseAll(ctx, trip); err != nil {
			return err
		}

		// Chain the freight forward: the trip's destination becomes each
		// loadsheet's next origin. An unresolvable profile leaves the origin
		// untouched but still detaches and reopens the freight.
		newOrigin := ""
		profile, err := r.Profiles.GetByID(ctx, trip.ProfileID)
		switch {
		case err == nil:
			newOrigin = profile.DestinationTerminalCode
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		sheets, err := r.Loadsheets.DetachAndAdvance(ctx, trip.ID, newOrigin)
		if err != nil {
			return err
		}

		report, err := r.Reports.CreateReport(ctx, buildReport(trip, driverID, arrivedAt, in))
		if err != nil {
			return err
		}

		result = ArrivalResult{Trip: trip, Report: report, Loadsheets: sheets}

		if in.IssueType != "" && in.IssueUnitNumber != "" && in.IssueDescription != "" {
			issue, err := r.Reports.CreateIssue(ctx, domain.EquipmentIssue{
				TripID:      trip.ID,
				IssueType:   in.IssueType,
				UnitNumber:  in.IssueUnitNumber,
				Description: in.IssueDescription,
			})
			if err != nil {
				return err
			}
			result.Issue = &issue
		}

		if in.MoraleRating != nil {
			morale, created, err := r.Reports.CreateMorale(ctx, domain.DriverMoraleRating{
				TripID:   trip.ID,
				DriverID: driverID,
				Rating:   *in.MoraleRating,
			})
			if err != nil {
				return err
			}
			if created {
				result.Morale = &morale
			}
		}
		return nil
	})
	if err != nil {
		return ArrivalResult{}, fmt.Errorf("service.TripService.Arrive: %w", err)
	}
	return result, nil
}

// GetTrip returns a trip with its profile and attached loadsheets.
// When driverID is non-nil the caller must be assigned to the trip.
func (s *TripService) GetTrip(ctx context.Context, tripID uuid.UUID, driverID *uuid.UUID) (TripDetails, error) {
	trip, err := s.reads.Trips.GetByID(ctx, tripID)
	if err != nil {
		return TripDetails{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
	}
	if driverID != nil {
		if err := requireAssigned(trip, *driverID); err != nil {
			return TripDetails{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
		}
	}

	details := TripDetails{Trip: trip}

	profile, err := s.reads.Profiles.GetByID(ctx, trip.ProfileID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return TripDetails{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
	}
	details.Profile = profile

	sheets, err := s.reads.Loadsheets.ListByTripID(ctx, tripID)
	if err != nil {
		return TripDetails{}, fmt.Errorf("service.TripService.GetTrip: %w", err)
	}
	if sheets == nil {
		sheets = []domain.Loadsheet{}
	}
	details.Loadsheets = sheets

	return details, nil
}

// ListDriverTrips returns the driver's trips inside the lookback window,
// most recent first. Always returns a non-nil slice.
func (s *TripService) ListDriverTrips(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.Trip, error) {
	if _, err := s.reads.Drivers.GetByID(ctx, driverID); err != nil {
		return nil, fmt.Errorf("service.TripService.ListDriverTrips: %w", err)
	}

	w := domain.NewSinceWindow(sinceDays, s.now())
	trips, err := s.reads.Trips.ListByDriverSince(ctx, driverID, w)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListDriverTrips: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}

// resolveProfile matches a loadsheet's free-text linehaul name against
// profile code or name. No match fails with domain.ErrProfileNotFound; more
// than one match is a conflict — ambiguity is reported, never resolved by
// picking an arbitrary winner.
func resolveProfile(ctx context.Context, profiles repo.ProfileRepo, linehaulName string) (domain.LinehaulProfile, error) {
	linehaulName = strings.TrimSpace(linehaulName)
	if linehaulName == "" {
		return domain.LinehaulProfile{}, fmt.Errorf("%w: loadsheet has no linehaul name", domain.ErrProfileNotFound)
	}

	matches, err := profiles.FindByNameOrCode(ctx, linehaulName)
	if err != nil {
		return domain.LinehaulProfile{}, err
	}
	switch len(matches) {
	case 0:
		return domain.LinehaulProfile{}, fmt.Errorf("%w: no profile matches %q", domain.ErrProfileNotFound, linehaulName)
	case 1:
		return matches[0], nil
	}
	return domain.LinehaulProfile{}, fmt.Errorf("%w: linehaul name %q matches %d profiles",
		domain.ErrConflict, linehaulName, len(matches))
}

// buildReport assembles the DriverTripReport row for an arrival.
func buildReport(trip domain.Trip, driverID uuid.UUID, arrivedAt time.Time, in ArrivalInput) domain.DriverTripReport {
	report := domain.DriverTripReport{
		TripID:      trip.ID,
		DriverID:    driverID,
		WaitStart:   in.WaitStart,
		WaitEnd:     in.WaitEnd,
		Notes:       in.Notes,
		ArrivalTime: arrivedAt,
	}
	if in.WaitStart != nil && in.WaitEnd != nil {
		minutes := domain.WaitMinutesBetween(*in.WaitStart, *in.WaitEnd)
		report.WaitMinutes = &minutes
	}
	return report
}

// validateCreate enforces the structural rules for self-service creation.
func validateCreate(in CreateTripInput) error {
	if in.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver id is required", domain.ErrValidation)
	}
	if len(in.LoadsheetIDs) == 0 {
		return fmt.Errorf("%w: at least one loadsheet is required", domain.ErrValidation)
	}
	if len(in.TrailerIDs) > MaxTrailers {
		return fmt.Errorf("%w: at most %d trailers per trip", domain.ErrValidation, MaxTrailers)
	}
	if len(in.DollyIDs) > MaxDollies {
		return fmt.Errorf("%w: at most %d dollies per trip", domain.ErrValidation, MaxDollies)
	}
	return nil
}

// validateArrival enforces the structural rules for arrival details.
// An out-of-range morale rating is rejected, not silently dropped.
func validateArrival(in ArrivalInput) error {
	if in.WaitStart != nil && in.WaitEnd != nil && in.WaitEnd.Before(*in.WaitStart) {
		return fmt.Errorf("%w: wait end must not be before wait start", domain.ErrValidation)
	}
	if (in.WaitStart == nil) != (in.WaitEnd == nil) {
		return fmt.Errorf("%w: wait start and wait end must be supplied together", domain.ErrValidation)
	}
	if in.MoraleRating != nil {
		if r := *in.MoraleRating; r < domain.MoraleRatingMin || r > domain.MoraleRatingMax {
			return fmt.Errorf("%w: morale rating must be between %d and %d",
				domain.ErrValidation, domain.MoraleRatingMin, domain.MoraleRatingMax)
		}
	}
	return nil
}

// isTripNumberConflict reports whether err is the duplicate-trip-number
// conflict raised by the unique index when two creations race on the same
// date prefix.
func isTripNumberConflict(err error) bool {
	return err != nil && errors.Is(err, domain.ErrConflict) && strings.Contains(err.Error(), "trip number")
}
