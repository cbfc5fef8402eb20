package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

func TestLoadsheetRepo_Attach(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	profileID := insertProfile(t, tx, "ABQ-DEN-2", "ABQ DEN second", "ABQ", "DEN")
	driverID := insertDriver(t, tx, "D-300", "5055552000", domain.DriverAvailable, true)
	trip, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303001"))
	require.NoError(t, err)

	lsID := insertLoadsheet(t, tx, "M-1000", "ABQ", "DEN", "ABQ-DEN-2", domain.LoadsheetClosed)

	got, err := r.Loadsheets.Attach(ctx, lsID, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.LoadsheetDispatched, got.Status)
	require.NotNil(t, got.LinehaulTripID)
	assert.Equal(t, trip.ID, *got.LinehaulTripID)
}

func TestLoadsheetRepo_Attach_Idempotent(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	profileID := insertProfile(t, tx, "ABQ-DEN-3", "ABQ DEN third", "ABQ", "DEN")
	driverID := insertDriver(t, tx, "D-301", "5055552001", domain.DriverAvailable, true)
	trip, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303002"))
	require.NoError(t, err)

	lsID := insertLoadsheet(t, tx, "M-1001", "ABQ", "DEN", "", domain.LoadsheetClosed)

	_, err = r.Loadsheets.Attach(ctx, lsID, trip.ID)
	require.NoError(t, err)
	// Re-attaching to the same trip is a no-op, not a conflict.
	_, err = r.Loadsheets.Attach(ctx, lsID, trip.ID)
	require.NoError(t, err)
}

func TestLoadsheetRepo_Attach_AlreadyAttachedElsewhere(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	profileID := insertProfile(t, tx, "ABQ-ELP-2", "ABQ ELP second", "ABQ", "ELP")
	driverID := insertDriver(t, tx, "D-302", "5055552002", domain.DriverAvailable, true)
	first, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303003"))
	require.NoError(t, err)
	second, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303004"))
	require.NoError(t, err)

	lsID := insertLoadsheet(t, tx, "M-1002", "ABQ", "ELP", "", domain.LoadsheetClosed)
	_, err = r.Loadsheets.Attach(ctx, lsID, first.ID)
	require.NoError(t, err)

	_, err = r.Loadsheets.Attach(ctx, lsID, second.ID)

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorContains(t, err, "M-1002")
}

// TestLoadsheetRepo_DetachAndAdvance covers the leg-chaining invariant: on
// arrival at DEN, an ABQ→DEN loadsheet becomes an OPEN DEN-origin loadsheet
// with no destination and no trip reference.
func TestLoadsheetRepo_DetachAndAdvance(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	profileID := insertProfile(t, tx, "ABQ-DEN-4", "ABQ DEN fourth", "ABQ", "DEN")
	driverID := insertDriver(t, tx, "D-303", "5055552003", domain.DriverAvailable, true)
	trip, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303005"))
	require.NoError(t, err)

	lsID := insertLoadsheet(t, tx, "M-1003", "ABQ", "DEN", "", domain.LoadsheetClosed)
	_, err = r.Loadsheets.Attach(ctx, lsID, trip.ID)
	require.NoError(t, err)

	advanced, err := r.Loadsheets.DetachAndAdvance(ctx, trip.ID, "DEN")

	require.NoError(t, err)
	require.Len(t, advanced, 1)
	ls := advanced[0]
	assert.Equal(t, "DEN", ls.OriginTerminalCode)
	assert.Nil(t, ls.DestinationTerminalCode)
	assert.Equal(t, domain.LoadsheetOpen, ls.Status)
	assert.Nil(t, ls.LinehaulTripID)
}

func TestLoadsheetRepo_DetachAndAdvance_UnresolvedTerminal(t *testing.T) {
	tx, r := newTestTx(t)
	ctx := context.Background()

	profileID := insertProfile(t, tx, "ABQ-DEN-5", "ABQ DEN fifth", "ABQ", "DEN")
	driverID := insertDriver(t, tx, "D-304", "5055552004", domain.DriverAvailable, true)
	trip, err := r.Trips.Create(ctx, tripFixture(profileID, driverID, "20240303006"))
	require.NoError(t, err)

	lsID := insertLoadsheet(t, tx, "M-1004", "ABQ", "DEN", "", domain.LoadsheetClosed)
	_, err = r.Loadsheets.Attach(ctx, lsID, trip.ID)
	require.NoError(t, err)

	// Empty new origin: freight still detaches and reopens, origin unchanged.
	advanced, err := r.Loadsheets.DetachAndAdvance(ctx, trip.ID, "")

	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, "ABQ", advanced[0].OriginTerminalCode)
	assert.Equal(t, domain.LoadsheetOpen, advanced[0].Status)
}
