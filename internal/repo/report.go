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

// ReportRepo defines the persistence operations for post-arrival reporting:
// the driver trip report and its optional equipment-issue and morale children.
type ReportRepo interface {
	// CreateReport inserts the trip report for an arrival event.
	CreateReport(ctx context.Context, report domain.DriverTripReport) (domain.DriverTripReport, error)

	// CreateIssue inserts an equipment issue reported on arrival.
	CreateIssue(ctx context.Context, issue domain.EquipmentIssue) (domain.EquipmentIssue, error)

	// CreateMorale inserts a morale rating for a trip unless one already
	// exists. Returns the existing rating with created=false in that case,
	// so repeated arrivals never produce a second row.
	CreateMorale(ctx context.Context, rating domain.DriverMoraleRating) (domain.DriverMoraleRating, bool, error)
}

// pgReportRepo is the Postgres implementation of ReportRepo.
type pgReportRepo struct {
	db db
}

// NewReportRepo constructs a ReportRepo backed by the provided db connection.
func NewReportRepo(db db) ReportRepo {
	return &pgReportRepo{db: db}
}

func (r *pgReportRepo) CreateReport(ctx context.Context, report domain.DriverTripReport) (domain.DriverTripReport, error) {
	const q = `
		INSERT INTO driver_trip_reports (trip_id, driver_id, wait_start, wait_end, wait_minutes, notes, arrival_time)
		VALUES (@trip_id, @driver_id, @wait_start, @wait_end, @wait_minutes, @notes, @arrival_time)
		RETURNING id, trip_id, driver_id, wait_start, wait_end, wait_minutes, notes, arrival_time, created_at`

	args := pgx.NamedArgs{
		"trip_id":      report.TripID,
		"driver_id":    report.DriverID,
		"wait_start":   report.WaitStart,
		"wait_end":     report.WaitEnd,
		"wait_minutes": report.WaitMinutes,
		"notes":        report.Notes,
		"arrival_time": report.ArrivalTime,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReport(row)
	if err != nil {
		return domain.DriverTripReport{}, fmt.Errorf("repo.ReportRepo.CreateReport: %w", err)
	}
	return result, nil
}

func (r *pgReportRepo) CreateIssue(ctx context.Context, issue domain.EquipmentIssue) (domain.EquipmentIssue, error) {
	const q = `
		INSERT INTO equipment_issues (trip_id, issue_type, unit_number, description)
		VALUES (@trip_id, @issue_type, @unit_number, @description)
		RETURNING id, trip_id, issue_type, unit_number, description, created_at`

	args := pgx.NamedArgs{
		"trip_id":     issue.TripID,
		"issue_type":  issue.IssueType,
		"unit_number": issue.UnitNumber,
		"description": issue.Description,
	}

	var id pgtype.UUID
	var tripID pgtype.UUID
	result := domain.EquipmentIssue{}
	err := r.db.QueryRow(ctx, q, args).Scan(&id, &tripID,
		&result.IssueType, &result.UnitNumber, &result.Description, &result.CreatedAt)
	if err != nil {
		return domain.EquipmentIssue{}, fmt.Errorf("repo.ReportRepo.CreateIssue: %w", err)
	}
	result.ID = uuid.UUID(id.Bytes)
	result.TripID = uuid.UUID(tripID.Bytes)
	return result, nil
}

// CreateMorale inserts at most one rating per trip: the unique index on
// trip_id turns a duplicate insert into a no-op, and the existing row is
// returned instead.
func (r *pgReportRepo) CreateMorale(ctx context.Context, rating domain.DriverMoraleRating) (domain.DriverMoraleRating, bool, error) {
	const insert = `
		INSERT INTO driver_morale_ratings (trip_id, driver_id, rating)
		VALUES (@trip_id, @driver_id, @rating)
		ON CONFLICT (trip_id) DO NOTHING
		RETURNING id, trip_id, driver_id, rating, created_at`

	args := pgx.NamedArgs{
		"trip_id":   rating.TripID,
		"driver_id": rating.DriverID,
		"rating":    rating.Rating,
	}

	result, err := scanMorale(r.db.QueryRow(ctx, insert, args))
	if err == nil {
		return result, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.DriverMoraleRating{}, false, fmt.Errorf("repo.ReportRepo.CreateMorale: %w", err)
	}

	// Conflict path: a rating already exists for this trip.
	const get = `
		SELECT id, trip_id, driver_id, rating, created_at
		FROM driver_morale_ratings
		WHERE trip_id = @trip_id`

	existing, err := scanMorale(r.db.QueryRow(ctx, get, pgx.NamedArgs{"trip_id": rating.TripID}))
	if err != nil {
		return domain.DriverMoraleRating{}, false, fmt.Errorf("repo.ReportRepo.CreateMorale: %w", err)
	}
	return existing, false, nil
}

func scanReport(s scanner) (domain.DriverTripReport, error) {
	var (
		rep         domain.DriverTripReport
		id          pgtype.UUID
		tripID      pgtype.UUID
		driverID    pgtype.UUID
		waitStart   pgtype.Timestamptz
		waitEnd     pgtype.Timestamptz
		waitMinutes pgtype.Int4
	)

	err := s.Scan(&id, &tripID, &driverID, &waitStart, &waitEnd, &waitMinutes,
		&rep.Notes, &rep.ArrivalTime, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DriverTripReport{}, domain.ErrNotFound
		}
		return domain.DriverTripReport{}, err
	}

	rep.ID = uuid.UUID(id.Bytes)
	rep.TripID = uuid.UUID(tripID.Bytes)
	rep.DriverID = uuid.UUID(driverID.Bytes)
	if waitStart.Valid {
		v := waitStart.Time
		rep.WaitStart = &v
	}
	if waitEnd.Valid {
		v := waitEnd.Time
		rep.WaitEnd = &v
	}
	if waitMinutes.Valid {
		v := int(waitMinutes.Int32)
		rep.WaitMinutes = &v
	}
	return rep, nil
}

func scanMorale(s scanner) (domain.DriverMoraleRating, error) {
	var (
		m        domain.DriverMoraleRating
		id       pgtype.UUID
		tripID   pgtype.UUID
		driverID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &driverID, &m.Rating, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DriverMoraleRating{}, domain.ErrNotFound
		}
		return domain.DriverMoraleRating{}, err
	}

	m.ID = uuid.UUID(id.Bytes)
	m.TripID = uuid.UUID(tripID.Bytes)
	m.DriverID = uuid.UUID(driverID.Bytes)
	return m, nil
}
