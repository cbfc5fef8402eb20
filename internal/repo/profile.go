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

// ProfileRepo defines read access to linehaul profiles. Profiles are owned
// by route management; this core never writes them.
type ProfileRepo interface {
	// GetByID retrieves a profile by primary key.
	// Returns domain.ErrNotFound if no profile with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.LinehaulProfile, error)

	// FindByNameOrCode returns every profile whose code or name matches the
	// given free-text linehaul name (case-insensitive). The service layer
	// decides what zero or multiple matches mean.
	FindByNameOrCode(ctx context.Context, linehaulName string) ([]domain.LinehaulProfile, error)
}

// pgProfileRepo is the Postgres implementation of ProfileRepo.
type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

const profileColumns = `id, code, name, origin_terminal_code, destination_terminal_code,
	coalesce(departure_time::text, ''), coalesce(arrival_time::text, ''), created_at, updated_at`

func (r *pgProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LinehaulProfile, error) {
	const q = `SELECT ` + profileColumns + ` FROM linehaul_profiles WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	p, err := scanProfile(row)
	if err != nil {
		return domain.LinehaulProfile{}, fmt.Errorf("repo.ProfileRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepo) FindByNameOrCode(ctx context.Context, linehaulName string) ([]domain.LinehaulProfile, error) {
	const q = `
		SELECT ` + profileColumns + `
		FROM linehaul_profiles
		WHERE lower(code) = lower(@name) OR lower(name) = lower(@name)
		ORDER BY code`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"name": linehaulName})
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.FindByNameOrCode: %w", err)
	}
	defer rows.Close()

	var profiles []domain.LinehaulProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProfileRepo.FindByNameOrCode: scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.FindByNameOrCode: rows: %w", err)
	}

	return profiles, nil
}

// scanProfile maps a single database row into a domain.LinehaulProfile.
func scanProfile(s scanner) (domain.LinehaulProfile, error) {
	var (
		p  domain.LinehaulProfile
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Code, &p.Name, &p.OriginTerminalCode, &p.DestinationTerminalCode,
		&p.DepartureTime, &p.ArrivalTime, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LinehaulProfile{}, domain.ErrNotFound
		}
		return domain.LinehaulProfile{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
