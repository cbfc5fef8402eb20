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

// EquipmentRepo defines the persistence operations for equipment units.
type EquipmentRepo interface {
	// GetByID retrieves a unit by primary key.
	// Returns domain.ErrNotFound if no unit with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.EquipmentUnit, error)

	// Claim transitions a unit AVAILABLE → IN_TRANSIT, verifying it is of the
	// expected kind. Returns domain.ErrResourceUnavailable if the unit is
	// IN_TRANSIT or OUT_OF_SERVICE, domain.ErrValidation on a kind mismatch.
	Claim(ctx context.Context, id uuid.UUID, kind domain.EquipmentKind) (domain.EquipmentUnit, error)

	// Release transitions a unit IN_TRANSIT → AVAILABLE. Idempotent: releasing
	// an already-available unit is a no-op. OUT_OF_SERVICE is left untouched —
	// a unit parked for maintenance mid-trip stays parked.
	Release(ctx context.Context, id uuid.UUID) error
}

// pgEquipmentRepo is the Postgres implementation of EquipmentRepo.
type pgEquipmentRepo struct {
	db db
}

// NewEquipmentRepo constructs an EquipmentRepo backed by the provided db connection.
func NewEquipmentRepo(db db) EquipmentRepo {
	return &pgEquipmentRepo{db: db}
}

const equipmentColumns = `id, unit_number, kind, status, created_at, updated_at`

func (r *pgEquipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.EquipmentUnit, error) {
	const q = `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	u, err := scanEquipment(row)
	if err != nil {
		return domain.EquipmentUnit{}, fmt.Errorf("repo.EquipmentRepo.GetByID: %w", err)
	}
	return u, nil
}

// Claim flips status AVAILABLE → IN_TRANSIT with a single conditional UPDATE.
// The kind predicate guards against a trailer ID being passed where a tractor
// is expected; that failure is a validation error, not contention.
func (r *pgEquipmentRepo) Claim(ctx context.Context, id uuid.UUID, kind domain.EquipmentKind) (domain.EquipmentUnit, error) {
	const q = `
		UPDATE equipment
		SET status = 'IN_TRANSIT', updated_at = now()
		WHERE id = @id AND kind = @kind AND status = 'AVAILABLE'
		RETURNING ` + equipmentColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "kind": kind})
	u, err := scanEquipment(row)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.EquipmentUnit{}, fmt.Errorf("repo.EquipmentRepo.Claim: %w", err)
	}

	// Zero rows: report why. The distinction matters at the edge — a
	// contended unit is retryable with different equipment, a bad reference
	// is a caller bug.
	current, lookupErr := r.GetByID(ctx, id)
	if lookupErr != nil {
		return domain.EquipmentUnit{}, fmt.Errorf("repo.EquipmentRepo.Claim: %w", lookupErr)
	}
	if current.Kind != kind {
		return domain.EquipmentUnit{}, fmt.Errorf("%w: unit %s is a %s, expected %s",
			domain.ErrValidation, current.UnitNumber, current.Kind, kind)
	}
	return domain.EquipmentUnit{}, fmt.Errorf("%w: %s %s is %s",
		domain.ErrResourceUnavailable, current.Kind, current.UnitNumber, current.Status)
}

func (r *pgEquipmentRepo) Release(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE equipment
		SET status = 'AVAILABLE', updated_at = now()
		WHERE id = @id AND status = 'IN_TRANSIT'`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.EquipmentRepo.Release: %w", err)
	}
	return nil
}

// scanEquipment maps a single database row into a domain.EquipmentUnit.
func scanEquipment(s scanner) (domain.EquipmentUnit, error) {
	var (
		u  domain.EquipmentUnit
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.UnitNumber, &u.Kind, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EquipmentUnit{}, domain.ErrNotFound
		}
		return domain.EquipmentUnit{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
