package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
	"github.com/kjohn5218/ltl-driver-management-sub008/testutil"
)

// newTestTx opens a transaction against the test database and returns it with
// a repo.Repos bound to it. The transaction is automatically rolled back when
// the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set and all migrations to be applied
// (TestMain in this package handles the latter).
func newTestTx(t *testing.T) (pgx.Tx, repo.Repos) {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test.
		_ = tx.Rollback(context.Background())
	})

	return tx, repo.NewRepos(tx)
}

// exec runs a SQL statement against the test transaction, failing the test on
// error. Used by the fixture helpers below to seed rows this core never
// creates itself (drivers, equipment, profiles, loadsheets).
func exec(t *testing.T, tx pgx.Tx, sql string, args pgx.NamedArgs) uuid.UUID {
	t.Helper()
	var id pgtype.UUID
	err := tx.QueryRow(context.Background(), sql, args).Scan(&id)
	require.NoError(t, err, "seed fixture")
	return uuid.UUID(id.Bytes)
}

func insertDriver(t *testing.T, tx pgx.Tx, number, phone string, status domain.DriverStatus, active bool) uuid.UUID {
	t.Helper()
	return exec(t, tx, `
		INSERT INTO drivers (driver_number, first_name, last_name, phone, status, active)
		VALUES (@number, 'Test', 'Driver', @phone, @status, @active)
		RETURNING id`,
		pgx.NamedArgs{"number": number, "phone": phone, "status": status, "active": active})
}

func insertEquipment(t *testing.T, tx pgx.Tx, unitNumber string, kind domain.EquipmentKind, status domain.EquipmentStatus) uuid.UUID {
	t.Helper()
	return exec(t, tx, `
		INSERT INTO equipment (unit_number, kind, status)
		VALUES (@unit, @kind, @status)
		RETURNING id`,
		pgx.NamedArgs{"unit": unitNumber, "kind": kind, "status": status})
}

func insertProfile(t *testing.T, tx pgx.Tx, code, name, origin, destination string) uuid.UUID {
	t.Helper()
	return exec(t, tx, `
		INSERT INTO linehaul_profiles (code, name, origin_terminal_code, destination_terminal_code)
		VALUES (@code, @name, @origin, @destination)
		RETURNING id`,
		pgx.NamedArgs{"code": code, "name": name, "origin": origin, "destination": destination})
}

func insertLoadsheet(t *testing.T, tx pgx.Tx, manifest, origin, destination, linehaulName string, status domain.LoadsheetStatus) uuid.UUID {
	t.Helper()
	return exec(t, tx, `
		INSERT INTO loadsheets (manifest_number, origin_terminal_code, destination_terminal_code, linehaul_name, status)
		VALUES (@manifest, @origin, @destination, @linehaul, @status)
		RETURNING id`,
		pgx.NamedArgs{"manifest": manifest, "origin": origin, "destination": destination,
			"linehaul": linehaulName, "status": status})
}

// tripFixture returns a domain.Trip referencing the given profile and driver,
// with sensible defaults. Callers can override individual fields before
// passing it to Create.
func tripFixture(profileID, driverID uuid.UUID, tripNumber string) domain.Trip {
	return domain.Trip{
		TripNumber:   tripNumber,
		ProfileID:    profileID,
		Status:       domain.TripAssigned,
		DriverID:     driverID,
		DispatchDate: time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC),
		Notes:        "test trip",
	}
}
