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

// DriverRepo defines the persistence operations for drivers.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type DriverRepo interface {
	// GetByID retrieves a driver by primary key.
	// Returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// GetByNumber retrieves an active driver by driver number.
	// Returns domain.ErrNotFound if absent or inactive.
	GetByNumber(ctx context.Context, driverNumber string) (domain.Driver, error)

	// Claim transitions an active driver AVAILABLE → DRIVING.
	// Returns domain.ErrResourceUnavailable if the driver is not claimable
	// (already driving, or inactive).
	Claim(ctx context.Context, id uuid.UUID) (domain.Driver, error)

	// Release transitions a driver DRIVING → AVAILABLE. Idempotent: releasing
	// an already-available driver is a no-op.
	Release(ctx context.Context, id uuid.UUID) error
}

// pgDriverRepo is the Postgres implementation of DriverRepo.
type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

const driverColumns = `id, driver_number, first_name, last_name, phone, status, active, created_at, updated_at`

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	d, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return d, nil
}

func (r *pgDriverRepo) GetByNumber(ctx context.Context, driverNumber string) (domain.Driver, error) {
	const q = `SELECT ` + driverColumns + ` FROM drivers WHERE driver_number = @number AND active`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"number": driverNumber})
	d, err := scanDriver(row)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByNumber: %w", err)
	}
	return d, nil
}

// Claim flips status AVAILABLE → DRIVING with a single conditional UPDATE.
// A zero-row update means the driver was not claimable; the error message
// reports the driver's actual state for the edge to render.
func (r *pgDriverRepo) Claim(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `
		UPDATE drivers
		SET status = 'DRIVING', updated_at = now()
		WHERE id = @id AND status = 'AVAILABLE' AND active
		RETURNING ` + driverColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	d, err := scanDriver(row)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Claim: %w", err)
	}

	// Zero rows: distinguish "not claimable" from "does not exist".
	current, lookupErr := r.GetByID(ctx, id)
	if lookupErr != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Claim: %w", lookupErr)
	}
	if !current.Active {
		return domain.Driver{}, fmt.Errorf("%w: driver %s is inactive", domain.ErrResourceUnavailable, current.DriverNumber)
	}
	return domain.Driver{}, fmt.Errorf("%w: driver %s is %s", domain.ErrResourceUnavailable, current.DriverNumber, current.Status)
}

func (r *pgDriverRepo) Release(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE drivers
		SET status = 'AVAILABLE', updated_at = now()
		WHERE id = @id AND status = 'DRIVING'`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.DriverRepo.Release: %w", err)
	}
	return nil
}

// scanDriver maps a single database row into a domain.Driver.
func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d  domain.Driver
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.DriverNumber, &d.FirstName, &d.LastName, &d.Phone,
		&d.Status, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
