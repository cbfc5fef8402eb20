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

// CutPayRepo defines the persistence operations for cut pay requests.
// This core only creates PENDING requests and lists a driver's history;
// review-state transitions belong to payroll tooling.
type CutPayRepo interface {
	// Create inserts a new cut pay request and returns the persisted record.
	Create(ctx context.Context, req domain.CutPayRequest) (domain.CutPayRequest, error)

	// ListByDriverSince returns a driver's requests inside the window,
	// most recent first.
	ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.CutPayRequest, error)
}

// pgCutPayRepo is the Postgres implementation of CutPayRepo.
type pgCutPayRepo struct {
	db db
}

// NewCutPayRepo constructs a CutPayRepo backed by the provided db connection.
func NewCutPayRepo(db db) CutPayRepo {
	return &pgCutPayRepo{db: db}
}

const cutPayColumns = `id, driver_id, request_type, hours_requested, miles_requested,
	trailer_config, reason, status, created_at`

func (r *pgCutPayRepo) Create(ctx context.Context, req domain.CutPayRequest) (domain.CutPayRequest, error) {
	const q = `
		INSERT INTO cut_pay_requests (driver_id, request_type, hours_requested, miles_requested,
		                              trailer_config, reason, status)
		VALUES (@driver_id, @request_type, @hours_requested, @miles_requested,
		        @trailer_config, @reason, @status)
		RETURNING ` + cutPayColumns

	args := pgx.NamedArgs{
		"driver_id":       req.DriverID,
		"request_type":    req.RequestType,
		"hours_requested": req.HoursRequested,
		"miles_requested": req.MilesRequested,
		"trailer_config":  req.TrailerConfig,
		"reason":          req.Reason,
		"status":          req.Status,
	}

	result, err := scanCutPay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.CutPayRequest{}, fmt.Errorf("repo.CutPayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCutPayRepo) ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.CutPayRequest, error) {
	const q = `
		SELECT ` + cutPayColumns + `
		FROM cut_pay_requests
		WHERE driver_id = @driver_id AND created_at >= @cutoff
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"driver_id": driverID, "cutoff": w.Cutoff})
	if err != nil {
		return nil, fmt.Errorf("repo.CutPayRepo.ListByDriverSince: %w", err)
	}
	defer rows.Close()

	var reqs []domain.CutPayRequest
	for rows.Next() {
		cp, err := scanCutPay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CutPayRepo.ListByDriverSince: scan: %w", err)
		}
		reqs = append(reqs, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CutPayRepo.ListByDriverSince: rows: %w", err)
	}
	return reqs, nil
}

// scanCutPay maps a single database row into a domain.CutPayRequest.
func scanCutPay(s scanner) (domain.CutPayRequest, error) {
	var (
		cp       domain.CutPayRequest
		id       pgtype.UUID
		driverID pgtype.UUID
		hours    pgtype.Float8
		miles    pgtype.Float8
	)

	err := s.Scan(&id, &driverID, &cp.RequestType, &hours, &miles,
		&cp.TrailerConfig, &cp.Reason, &cp.Status, &cp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CutPayRequest{}, domain.ErrNotFound
		}
		return domain.CutPayRequest{}, err
	}

	cp.ID = uuid.UUID(id.Bytes)
	cp.DriverID = uuid.UUID(driverID.Bytes)
	if hours.Valid {
		v := hours.Float64
		cp.HoursRequested = &v
	}
	if miles.Valid {
		v := miles.Float64
		cp.MilesRequested = &v
	}
	return cp, nil
}
