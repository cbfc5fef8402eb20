package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kjohn5218/ltl-driver-management-sub008/internal/domain"
)

func TestWaitMinutesBetween(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact", start.Add(45 * time.Minute), 45},
		{"rounds down", start.Add(45*time.Minute + 29*time.Second), 45},
		{"rounds up", start.Add(45*time.Minute + 31*time.Second), 46},
		{"zero", start, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.WaitMinutesBetween(start, tc.end))
		})
	}
}

func TestNormalizeTrailerConfig(t *testing.T) {
	assert.Equal(t, domain.TrailerSingle, domain.NormalizeTrailerConfig("SINGLE"))
	assert.Equal(t, domain.TrailerDouble, domain.NormalizeTrailerConfig("DOUBLE"))
	assert.Equal(t, domain.TrailerTriple, domain.NormalizeTrailerConfig("TRIPLE"))

	assert.Equal(t, domain.TrailerSingle, domain.NormalizeTrailerConfig(""))
	assert.Equal(t, domain.TrailerSingle, domain.NormalizeTrailerConfig("double"))
	assert.Equal(t, domain.TrailerSingle, domain.NormalizeTrailerConfig("B-TRAIN"))
}

func TestNewSinceWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	days := func(n int) *int { return &n }

	tests := []struct {
		name      string
		sinceDays *int
		wantDays  int
	}{
		{"nil defaults to a week", nil, 7},
		{"explicit", days(30), 30},
		{"zero falls back", days(0), 7},
		{"negative falls back", days(-3), 7},
		{"capped at ninety", days(365), 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := domain.NewSinceWindow(tc.sinceDays, now)
			assert.Equal(t, now.AddDate(0, 0, -tc.wantDays), w.Cutoff)
		})
	}
}
