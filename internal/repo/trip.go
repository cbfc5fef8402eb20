package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

// TripRepo defines the persistence operations for trips.
//
// Status advancement is expressed as conditional updates (MarkInTransit,
// MarkArrived) so that a concurrent attempt to advance the same trip observes
// a zero-row update instead of silently re-applying the transition.
type TripRepo interface {
	// Create inserts a new trip and its trailer/dolly references, returning
	// the persisted record. Returns domain.ErrConflict if the trip number is
	// already taken (unique index).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip with its trailer and dolly references.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByDriverSince returns trips where the driver is primary or team
	// driver and the dispatch date falls inside the window, most recent first.
	ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.Trip, error)

	// NextSequence returns 1 + the highest existing trip-number sequence for
	// the given YYYYMMDD prefix. Must be called inside the same transaction
	// as the subsequent Create.
	NextSequence(ctx context.Context, prefix string) (int, error)

	// MarkInTransit advances a trip to IN_TRANSIT, stamping the actual
	// departure. Only trips in ASSIGNED or DISPATCHED match; otherwise the
	// trip's current state is reported via domain.ErrInvalidTransition.
	MarkInTransit(ctx context.Context, id uuid.UUID, departedAt time.Time, notes string) (domain.Trip, error)

	// MarkArrived advances a trip IN_TRANSIT → ARRIVED, stamping the actual
	// arrival. Any other source state is reported via domain.ErrInvalidTransition.
	MarkArrived(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, trip_number, profile_id, status, driver_id, team_driver_id, tractor_id,
	dispatch_date, actual_departure, actual_arrival, is_owner_operator, notes, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (trip_number, profile_id, status, driver_id, team_driver_id, tractor_id,
		                   dispatch_date, actual_departure, is_owner_operator, notes)
		VALUES (@trip_number, @profile_id, @status, @driver_id, @team_driver_id, @tractor_id,
		        @dispatch_date, @actual_departure, @is_owner_operator, @notes)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"trip_number":       trip.TripNumber,
		"profile_id":        trip.ProfileID,
		"status":            trip.Status,
		"driver_id":         trip.DriverID,
		"team_driver_id":    trip.TeamDriverID, // nil becomes NULL
		"tractor_id":        trip.TractorID,
		"dispatch_date":     trip.DispatchDate,
		"actual_departure":  trip.ActualDeparture,
		"is_owner_operator": trip.IsOwnerOperator,
		"notes":             trip.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w: trip number %s already exists",
				domain.ErrConflict, trip.TripNumber)
		}
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := r.insertUnits(ctx, result.ID, "trip_trailers", trip.TrailerIDs); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	if err := r.insertUnits(ctx, result.ID, "trip_dollies", trip.DollyIDs); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	result.TrailerIDs = trip.TrailerIDs
	result.DollyIDs = trip.DollyIDs
	return result, nil
}

// insertUnits writes the ordered trailer/dolly references for a trip.
// The table name comes from a fixed internal call site, never user input.
func (r *pgTripRepo) insertUnits(ctx context.Context, tripID uuid.UUID, table string, unitIDs []uuid.UUID) error {
	for i, unitID := range unitIDs {
		q := `INSERT INTO ` + table + ` (trip_id, equipment_id, position) VALUES (@trip_id, @equipment_id, @position)`
		args := pgx.NamedArgs{"trip_id": tripID, "equipment_id": unitID, "position": i + 1}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	trip, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	if err := r.loadUnits(ctx, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE (driver_id = @driver_id OR team_driver_id = @driver_id)
		AND   dispatch_date >= @cutoff
		ORDER BY dispatch_date DESC, trip_number DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"driver_id": driverID, "cutoff": w.Cutoff})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDriverSince: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByDriverSince: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByDriverSince: rows: %w", err)
	}

	for i := range trips {
		if err := r.loadUnits(ctx, &trips[i]); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByDriverSince: %w", err)
		}
	}
	return trips, nil
}

func (r *pgTripRepo) NextSequence(ctx context.Context, prefix string) (int, error) {
	// The sequence is the 3-digit suffix after the 8-character date prefix.
	const q = `
		SELECT coalesce(max(substring(trip_number FROM 9)::int), 0) + 1
		FROM trips
		WHERE trip_number LIKE @prefix || '%'`

	var seq int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"prefix": prefix}).Scan(&seq); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.NextSequence: %w", err)
	}
	return seq, nil
}

func (r *pgTripRepo) MarkInTransit(ctx context.Context, id uuid.UUID, departedAt time.Time, notes string) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET status           = 'IN_TRANSIT',
		    actual_departure = @departed_at,
		    notes            = CASE WHEN @notes = '' THEN notes ELSE @notes END,
		    updated_at       = now()
		WHERE id = @id AND status IN ('ASSIGNED', 'DISPATCHED')
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{"id": id, "departed_at": departedAt, "notes": notes}
	trip, err := r.advance(ctx, q, args, id, domain.TripAssigned, domain.TripDispatched)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.MarkInTransit: %w", err)
	}
	return trip, nil
}

func (r *pgTripRepo) MarkArrived(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET status         = 'ARRIVED',
		    actual_arrival = @arrived_at,
		    updated_at     = now()
		WHERE id = @id AND status = 'IN_TRANSIT'
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{"id": id, "arrived_at": arrivedAt}
	trip, err := r.advance(ctx, q, args, id, domain.TripInTransit)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.MarkArrived: %w", err)
	}
	return trip, nil
}

// advance runs a conditional status-advance update. A zero-row result is
// resolved into either domain.ErrNotFound (no such trip) or a
// domain.ErrInvalidTransition naming the current and required states.
func (r *pgTripRepo) advance(ctx context.Context, q string, args pgx.NamedArgs, id uuid.UUID, required ...domain.TripStatus) (domain.Trip, error) {
	row := r.db.QueryRow(ctx, q, args)
	trip, err := scanTrip(row)
	if err == nil {
		if err := r.loadUnits(ctx, &trip); err != nil {
			return domain.Trip{}, err
		}
		return trip, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, err
	}

	current, lookupErr := r.GetByID(ctx, id)
	if lookupErr != nil {
		return domain.Trip{}, lookupErr
	}
	return domain.Trip{}, domain.TransitionError(current.TripNumber, current.Status, required...)
}

// loadUnits fills in the ordered trailer and dolly references for a trip.
func (r *pgTripRepo) loadUnits(ctx context.Context, trip *domain.Trip) error {
	var err error
	if trip.TrailerIDs, err = r.listUnits(ctx, trip.ID, "trip_trailers"); err != nil {
		return err
	}
	if trip.DollyIDs, err = r.listUnits(ctx, trip.ID, "trip_dollies"); err != nil {
		return err
	}
	return nil
}

func (r *pgTripRepo) listUnits(ctx context.Context, tripID uuid.UUID, table string) ([]uuid.UUID, error) {
	q := `SELECT equipment_id FROM ` + table + ` WHERE trip_id = @trip_id ORDER BY position`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list %s: scan: %w", table, err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: rows: %w", table, err)
	}
	return ids, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and nullable column conversions; trailer/dolly
// references are loaded separately.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t            domain.Trip
		id           pgtype.UUID
		profileID    pgtype.UUID
		driverID     pgtype.UUID
		teamDriverID pgtype.UUID
		tractorID    pgtype.UUID
		departure    pgtype.Timestamptz
		arrival      pgtype.Timestamptz
	)

	err := s.Scan(&id, &t.TripNumber, &profileID, &t.Status, &driverID, &teamDriverID, &tractorID,
		&t.DispatchDate, &departure, &arrival, &t.IsOwnerOperator, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.ProfileID = uuid.UUID(profileID.Bytes)
	t.DriverID = uuid.UUID(driverID.Bytes)
	if teamDriverID.Valid {
		v := uuid.UUID(teamDriverID.Bytes)
		t.TeamDriverID = &v
	}
	if tractorID.Valid {
		v := uuid.UUID(tractorID.Bytes)
		t.TractorID = &v
	}
	if departure.Valid {
		v := departure.Time
		t.ActualDeparture = &v
	}
	if arrival.Valid {
		v := arrival.Time
		t.ActualArrival = &v
	}

	return t, nil
}
