package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field — set only the ones your test needs; calling an unset
// method panics, which points straight at the missing stub.

type mockDriverRepo struct {
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	getByNumber func(ctx context.Context, driverNumber string) (domain.Driver, error)
	claim       func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	release     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) GetByNumber(ctx context.Context, n string) (domain.Driver, error) {
	return m.getByNumber(ctx, n)
}
func (m *mockDriverRepo) Claim(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.claim(ctx, id)
}
func (m *mockDriverRepo) Release(ctx context.Context, id uuid.UUID) error {
	return m.release(ctx, id)
}

var _ repo.DriverRepo = (*mockDriverRepo)(nil)

type mockEquipmentRepo struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.EquipmentUnit, error)
	claim   func(ctx context.Context, id uuid.UUID, kind domain.EquipmentKind) (domain.EquipmentUnit, error)
	release func(ctx context.Context, id uuid.UUID) error
}

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.EquipmentUnit, error) {
	return m.getByID(ctx, id)
}
func (m *mockEquipmentRepo) Claim(ctx context.Context, id uuid.UUID, kind domain.EquipmentKind) (domain.EquipmentUnit, error) {
	return m.claim(ctx, id, kind)
}
func (m *mockEquipmentRepo) Release(ctx context.Context, id uuid.UUID) error {
	return m.release(ctx, id)
}

var _ repo.EquipmentRepo = (*mockEquipmentRepo)(nil)

type mockProfileRepo struct {
	getByID          func(ctx context.Context, id uuid.UUID) (domain.LinehaulProfile, error)
	findByNameOrCode func(ctx context.Context, linehaulName string) ([]domain.LinehaulProfile, error)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LinehaulProfile, error) {
	return m.getByID(ctx, id)
}
func (m *mockProfileRepo) FindByNameOrCode(ctx context.Context, n string) ([]domain.LinehaulProfile, error) {
	return m.findByNameOrCode(ctx, n)
}

var _ repo.ProfileRepo = (*mockProfileRepo)(nil)

type mockTripRepo struct {
	create            func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID           func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByDriverSince func(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.Trip, error)
	nextSequence      func(ctx context.Context, prefix string) (int, error)
	markInTransit     func(ctx context.Context, id uuid.UUID, departedAt time.Time, notes string) (domain.Trip, error)
	markArrived       func(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.Trip, error) {
	return m.listByDriverSince(ctx, driverID, w)
}
func (m *mockTripRepo) NextSequence(ctx context.Context, prefix string) (int, error) {
	return m.nextSequence(ctx, prefix)
}
func (m *mockTripRepo) MarkInTransit(ctx context.Context, id uuid.UUID, departedAt time.Time, notes string) (domain.Trip, error) {
	return m.markInTransit(ctx, id, departedAt, notes)
}
func (m *mockTripRepo) MarkArrived(ctx context.Context, id uuid.UUID, arrivedAt time.Time) (domain.Trip, error) {
	return m.markArrived(ctx, id, arrivedAt)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockLoadsheetRepo struct {
	getByID          func(ctx context.Context, id uuid.UUID) (domain.Loadsheet, error)
	listByTripID     func(ctx context.Context, tripID uuid.UUID) ([]domain.Loadsheet, error)
	attach           func(ctx context.Context, loadsheetID, tripID uuid.UUID) (domain.Loadsheet, error)
	detachAndAdvance func(ctx context.Context, tripID uuid.UUID, newOriginCode string) ([]domain.Loadsheet, error)
}

func (m *mockLoadsheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Loadsheet, error) {
	return m.getByID(ctx, id)
}
func (m *mockLoadsheetRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Loadsheet, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockLoadsheetRepo) Attach(ctx context.Context, loadsheetID, tripID uuid.UUID) (domain.Loadsheet, error) {
	return m.attach(ctx, loadsheetID, tripID)
}
func (m *mockLoadsheetRepo) DetachAndAdvance(ctx context.Context, tripID uuid.UUID, newOriginCode string) ([]domain.Loadsheet, error) {
	return m.detachAndAdvance(ctx, tripID, newOriginCode)
}

var _ repo.LoadsheetRepo = (*mockLoadsheetRepo)(nil)

type mockReportRepo struct {
	createReport func(ctx context.Context, report domain.DriverTripReport) (domain.DriverTripReport, error)
	createIssue  func(ctx context.Context, issue domain.EquipmentIssue) (domain.EquipmentIssue, error)
	createMorale func(ctx context.Context, rating domain.DriverMoraleRating) (domain.DriverMoraleRating, bool, error)
}

func (m *mockReportRepo) CreateReport(ctx context.Context, report domain.DriverTripReport) (domain.DriverTripReport, error) {
	return m.createReport(ctx, report)
}
func (m *mockReportRepo) CreateIssue(ctx context.Context, issue domain.EquipmentIssue) (domain.EquipmentIssue, error) {
	return m.createIssue(ctx, issue)
}
func (m *mockReportRepo) CreateMorale(ctx context.Context, rating domain.DriverMoraleRating) (domain.DriverMoraleRating, bool, error) {
	return m.createMorale(ctx, rating)
}

var _ repo.ReportRepo = (*mockReportRepo)(nil)

type mockCutPayRepo struct {
	create            func(ctx context.Context, req domain.CutPayRequest) (domain.CutPayRequest, error)
	listByDriverSince func(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.CutPayRequest, error)
}

func (m *mockCutPayRepo) Create(ctx context.Context, req domain.CutPayRequest) (domain.CutPayRequest, error) {
	return m.create(ctx, req)
}
func (m *mockCutPayRepo) ListByDriverSince(ctx context.Context, driverID uuid.UUID, w domain.SinceWindow) ([]domain.CutPayRequest, error) {
	return m.listByDriverSince(ctx, driverID, w)
}

var _ repo.CutPayRepo = (*mockCutPayRepo)(nil)

// fakeTxRunner satisfies repo.TxRunner by invoking fn directly against the
// configured repos, counting "transactions" so tests can assert on retry
// behavior. A non-nil error from fn models a rollback.
type fakeTxRunner struct {
	repos repo.Repos
	calls int
}

func (f *fakeTxRunner) InTx(_ context.Context, fn func(r repo.Repos) error) error {
	f.calls++
	return fn(f.repos)
}

var _ repo.TxRunner = (*fakeTxRunner)(nil)
