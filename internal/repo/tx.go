package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repos is the full set of repositories bound to a single connection or
// transaction. Services receive a tx-scoped Repos inside TxRunner.InTx, so
// every write a dispatch/arrival makes shares one transaction.
type Repos struct {
	Drivers    DriverRepo
	Equipment  EquipmentRepo
	Profiles   ProfileRepo
	Trips      TripRepo
	Loadsheets LoadsheetRepo
	Reports    ReportRepo
	CutPay     CutPayRepo
}

// NewRepos builds a Repos over the given connection source
// (*pgxpool.Pool for pool-scoped reads, pgx.Tx inside a transaction).
func NewRepos(db db) Repos {
	return Repos{
		Drivers:    NewDriverRepo(db),
		Equipment:  NewEquipmentRepo(db),
		Profiles:   NewProfileRepo(db),
		Trips:      NewTripRepo(db),
		Loadsheets: NewLoadsheetRepo(db),
		Reports:    NewReportRepo(db),
		CutPay:     NewCutPayRepo(db),
	}
}

// TxRunner runs a function as one all-or-nothing database transaction.
// It is the unit-of-work boundary for every trip lifecycle operation: the
// resource claims, trip status write, loadsheet attach/detach, and report
// creation of a single operation either all commit or all roll back.
type TxRunner interface {
	// InTx begins a transaction, calls fn with repos bound to it, and
	// commits if fn returns nil. Any error from fn (or from commit) rolls
	// the transaction back and is returned unchanged, so no partial
	// application is ever observable.
	InTx(ctx context.Context, fn func(r Repos) error) error
}

// pgTxRunner is the pgx-backed TxRunner.
type pgTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs a TxRunner over the given pool.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgTxRunner{pool: pool}
}

func (r *pgTxRunner) InTx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: begin: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.InTx: commit: %w", err)
	}
	return nil
}
