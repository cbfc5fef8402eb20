package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

// LoadsheetRepo defines the persistence operations for loadsheets.
//
// Attach and DetachAndAdvance are the only writers of loadsheet trip
// attachment, which keeps the invariant linehaul_trip_id != NULL ⇔
// status = DISPATCHED enforceable at two call sites.
type LoadsheetRepo interface {
	// GetByID retrieves a loadsheet by primary key.
	// Returns domain.ErrNotFound if no loadsheet with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Loadsheet, error)

	// ListByTripID returns every loadsheet currently attached to the trip.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Loadsheet, error)

	// Attach sets the loadsheet's trip reference and marks it DISPATCHED.
	// Returns domain.ErrConflict if the loadsheet is already attached to a
	// different trip, domain.ErrNotFound if it does not exist.
	Attach(ctx context.Context, loadsheetID, tripID uuid.UUID) (domain.Loadsheet, error)

	// DetachAndAdvance clears the trip reference on every loadsheet attached
	// to tripID and advances each for the next leg: origin becomes
	// newOriginCode (when non-empty), destination is cleared, status returns
	// to OPEN. Returns the advanced loadsheets.
	DetachAndAdvance(ctx context.Context, tripID uuid.UUID, newOriginCode string) ([]domain.Loadsheet, error)
}

// pgLoadsheetRepo is the Postgres implementation of LoadsheetRepo.
type pgLoadsheetRepo struct {
	db db
}

// NewLoadsheetRepo constructs a LoadsheetRepo backed by the provided db connection.
func NewLoadsheetRepo(db db) LoadsheetRepo {
	return &pgLoadsheetRepo{db: db}
}

const loadsheetColumns = `id, manifest_number, origin_terminal_code, destination_terminal_code,
	status, linehaul_name, linehaul_trip_id, created_at, updated_at`

func (r *pgLoadsheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Loadsheet, error) {
	const q = `SELECT ` + loadsheetColumns + ` FROM loadsheets WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	ls, err := scanLoadsheet(row)
	if err != nil {
		return domain.Loadsheet{}, fmt.Errorf("repo.LoadsheetRepo.GetByID: %w", err)
	}
	return ls, nil
}

func (r *pgLoadsheetRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Loadsheet, error) {
	const q = `
		SELECT ` + loadsheetColumns + `
		FROM loadsheets
		WHERE linehaul_trip_id = @trip_id
		ORDER BY manifest_number`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LoadsheetRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var sheets []domain.Loadsheet
	for rows.Next() {
		ls, err := scanLoadsheet(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LoadsheetRepo.ListByTripID: scan: %w", err)
		}
		sheets = append(sheets, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LoadsheetRepo.ListByTripID: rows: %w", err)
	}
	return sheets, nil
}

// Attach is a conditional update: only an unattached loadsheet (or one
// already attached to this same trip, making the call idempotent) matches.
func (r *pgLoadsheetRepo) Attach(ctx context.Context, loadsheetID, tripID uuid.UUID) (domain.Loadsheet, error) {
	const q = `
		UPDATE loadsheets
		SET linehaul_trip_id = @trip_id,
		    status           = 'DISPATCHED',
		    updated_at       = now()
		WHERE id = @id AND (linehaul_trip_id IS NULL OR linehaul_trip_id = @trip_id)
		RETURNING ` + loadsheetColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": loadsheetID, "trip_id": tripID})
	ls, err := scanLoadsheet(row)
	if err == nil {
		return ls, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Loadsheet{}, fmt.Errorf("repo.LoadsheetRepo.Attach: %w", err)
	}

	// Zero rows: either no such loadsheet, or it rides another trip.
	current, lookupErr := r.GetByID(ctx, loadsheetID)
	if lookupErr != nil {
		return domain.Loadsheet{}, fmt.Errorf("repo.LoadsheetRepo.Attach: %w", lookupErr)
	}
	return domain.Loadsheet{}, fmt.Errorf("%w: loadsheet %s is already attached to another trip",
		domain.ErrConflict, current.ManifestNumber)
}

func (r *pgLoadsheetRepo) DetachAndAdvance(ctx context.Context, tripID uuid.UUID, newOriginCode string) ([]domain.Loadsheet, error) {
	// When the arrival terminal could not be resolved the origin is left as
	// is; the freight still detaches and reopens.
	const q = `
		UPDATE loadsheets
		SET linehaul_trip_id          = NULL,
		    origin_terminal_code      = CASE WHEN @new_origin = '' THEN origin_terminal_code ELSE @new_origin END,
		    destination_terminal_code = NULL,
		    status                    = 'OPEN',
		    updated_at                = now()
		WHERE linehaul_trip_id = @trip_id
		RETURNING ` + loadsheetColumns

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "new_origin": newOriginCode})
	if err != nil {
		return nil, fmt.Errorf("repo.LoadsheetRepo.DetachAndAdvance: %w", err)
	}
	defer rows.Close()

	var sheets []domain.Loadsheet
	for rows.Next() {
		ls, err := scanLoadsheet(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LoadsheetRepo.DetachAndAdvance: scan: %w", err)
		}
		sheets = append(sheets, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LoadsheetRepo.DetachAndAdvance: rows: %w", err)
	}
	return sheets, nil
}

// scanLoadsheet maps a single database row into a domain.Loadsheet.
func scanLoadsheet(s scanner) (domain.Loadsheet, error) {
	var (
		ls          domain.Loadsheet
		id          pgtype.UUID
		destination pgtype.Text
		tripID      pgtype.UUID
	)

	err := s.Scan(&id, &ls.ManifestNumber, &ls.OriginTerminalCode, &destination,
		&ls.Status, &ls.LinehaulName, &tripID, &ls.CreatedAt, &ls.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Loadsheet{}, domain.ErrNotFound
		}
		return domain.Loadsheet{}, err
	}

	ls.ID = uuid.UUID(id.Bytes)
	if destination.Valid {
		v := destination.String
		ls.DestinationTerminalCode = &v
	}
	if tripID.Valid {
		v := uuid.UUID(tripID.Bytes)
		ls.LinehaulTripID = &v
	}

	return ls, nil
}
