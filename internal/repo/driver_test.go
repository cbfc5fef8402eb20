package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

func TestDriverRepo_GetByNumber(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	id := insertDriver(t, tx, "D-100", "(505) 555-1234", domain.DriverAvailable, true)

	got, err := r.Drivers.GetByNumber(ctx, "D-100")

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "D-100", got.DriverNumber)
	assert.Equal(t, domain.DriverAvailable, got.Status)
	assert.Equal(t, "1234", got.PhoneLast4())
}

func TestDriverRepo_GetByNumber_InactiveIsNotFound(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	insertDriver(t, tx, "D-101", "5055559999", domain.DriverAvailable, false)

	_, err := r.Drivers.GetByNumber(ctx, "D-101")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDriverRepo_Claim(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	id := insertDriver(t, tx, "D-102", "5055550001", domain.DriverAvailable, true)

	got, err := r.Drivers.Claim(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, domain.DriverDriving, got.Status)
}

func TestDriverRepo_Claim_AlreadyDriving(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	id := insertDriver(t, tx, "D-103", "5055550002", domain.DriverDriving, true)

	_, err := r.Drivers.Claim(ctx, id)

	require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	assert.ErrorContains(t, err, "D-103")
}

func TestDriverRepo_Claim_Inactive(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	id := insertDriver(t, tx, "D-104", "5055550003", domain.DriverAvailable, false)

	_, err := r.Drivers.Claim(ctx, id)

	require.ErrorIs(t, err, domain.ErrResourceUnavailable)
	assert.ErrorContains(t, err, "inactive")
}

func TestDriverRepo_Release_Idempotent(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	id := insertDriver(t, tx, "D-105", "5055550004", domain.DriverDriving, true)

	require.NoError(t, r.Drivers.Release(ctx, id))
	// Second release is a no-op, not an error.
	require.NoError(t, r.Drivers.Release(ctx, id))

	got, err := r.Drivers.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.DriverAvailable, got.Status)
}
