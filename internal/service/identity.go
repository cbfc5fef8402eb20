// Package service contains the business logic for the dispatch API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
	"github.com/kjohn5218/ltl-driver-management-sub008/internal/repo"
)

// IdentityService verifies a claimed driver identity from the public
// self-service channel. The shared secret is the last four digits of the
// driver's phone number — a deliberately low-assurance check chosen for
// frictionless field use. Rate limiting is the calling surface's job.
type IdentityService struct {
	drivers repo.DriverRepo
}

// NewIdentityService constructs an IdentityService backed by the provided repo.
func NewIdentityService(drivers repo.DriverRepo) *IdentityService {
	return &IdentityService{drivers: drivers}
}

// VerifyDriver confirms that phoneLast4 matches the last four digits of the
// stored phone for the active driver with the given number.
// Returns domain.ErrNotFound if no active driver has that number,
// domain.ErrUnauthorized on a mismatch. On success the returned reference
// carries id, name, number, and status — never the phone itself.
func (s *IdentityService) VerifyDriver(ctx context.Context, driverNumber, phoneLast4 string) (domain.DriverRef, error) {
	driverNumber = strings.TrimSpace(driverNumber)
	phoneLast4 = strings.TrimSpace(phoneLast4)
	if driverNumber == "" || phoneLast4 == "" {
		return domain.DriverRef{}, fmt.Errorf("%w: driver number and phone digits are required", domain.ErrValidation)
	}

	driver, err := s.drivers.GetByNumber(ctx, driverNumber)
	if err != nil {
		return domain.DriverRef{}, fmt.Errorf("service.IdentityService.VerifyDriver: %w", err)
	}

	stored := driver.PhoneLast4()
	if stored == "" || stored != phoneLast4 {
		return domain.DriverRef{}, fmt.Errorf("service.IdentityService.VerifyDriver: %w", domain.ErrUnauthorized)
	}

	return driver.Ref(), nil
}
