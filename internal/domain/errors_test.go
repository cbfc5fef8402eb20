package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

func TestErrProfileNotFoundMatchesNotFound(t *testing.T) {
	err := fmt.Errorf("resolving lane: %w", domain.ErrProfileNotFound)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, domain.ErrNotFound, domain.ErrProfileNotFound)
}
