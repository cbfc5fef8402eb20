package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
)

// CutPayService implements the driver self-service pay adjustment workflow.
// Requests are created PENDING; review transitions are owned by payroll.
type CutPayService struct {
	drivers repo.DriverRepo
	cutpay  repo.CutPayRepo
	now     func() time.Time
}

// NewCutPayService constructs a CutPayService backed by the provided repos.
func NewCutPayService(drivers repo.DriverRepo, cutpay repo.CutPayRepo) *CutPayService {
	return &CutPayService{drivers: drivers, cutpay: cutpay, now: time.Now}
}

// CreateCutPayInput carries a driver's pay adjustment request.
type CreateCutPayInput struct {
	DriverID       uuid.UUID
	RequestType    domain.CutPayType
	HoursRequested *float64
	MilesRequested *float64
	TrailerConfig  string // normalized; anything unrecognized becomes SINGLE
	Reason         string
}

// Create validates and persists a new PENDING cut pay request.
// HOURS requests require a positive hours quantity, MILES requests a
// positive miles quantity.
func (s *CutPayService) Create(ctx context.Context, in CreateCutPayInput) (domain.CutPayRequest, error) {
	driver, err := s.drivers.GetByID(ctx, in.DriverID)
	if err != nil {
		return domain.CutPayRequest{}, fmt.Errorf("service.CutPayService.Create: %w", err)
	}
	if !driver.Active {
		return domain.CutPayRequest{}, fmt.Errorf("%w: driver %s is not active", domain.ErrValidation, driver.DriverNumber)
	}

	req := domain.CutPayRequest{
		DriverID:      in.DriverID,
		RequestType:   in.RequestType,
		TrailerConfig: domain.NormalizeTrailerConfig(in.TrailerConfig),
		Reason:        in.Reason,
		Status:        domain.CutPayPending,
	}

	switch in.RequestType {
	case domain.CutPayHours:
		if in.HoursRequested == nil || *in.HoursRequested <= 0 {
			return domain.CutPayRequest{}, fmt.Errorf("%w: hours requested must be greater than zero", domain.ErrValidation)
		}
		req.HoursRequested = in.HoursRequested
	case domain.CutPayMiles:
		if in.MilesRequested == nil || *in.MilesRequested <= 0 {
			return domain.CutPayRequest{}, fmt.Errorf("%w: miles requested must be greater than zero", domain.ErrValidation)
		}
		req.MilesRequested = in.MilesRequested
	default:
		return domain.CutPayRequest{}, fmt.Errorf("%w: request type must be HOURS or MILES", domain.ErrValidation)
	}

	created, err := s.cutpay.Create(ctx, req)
	if err != nil {
		return domain.CutPayRequest{}, fmt.Errorf("service.CutPayService.Create: %w", err)
	}
	return created, nil
}

// ListByDriver returns the driver's requests inside the lookback window,
// most recent first. Always returns a non-nil slice.
func (s *CutPayService) ListByDriver(ctx context.Context, driverID uuid.UUID, sinceDays *int) ([]domain.CutPayRequest, error) {
	if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
		return nil, fmt.Errorf("service.CutPayService.ListByDriver: %w", err)
	}

	w := domain.NewSinceWindow(sinceDays, s.now())
	reqs, err := s.cutpay.ListByDriverSince(ctx, driverID, w)
	if err != nil {
		return nil, fmt.Errorf("service.CutPayService.ListByDriver: %w", err)
	}
	if reqs == nil {
		reqs = []domain.CutPayRequest{}
	}
	return reqs, nil
}
