package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractUserAndRepo(t *testing.T) {
	testCases := []struct {
		name     string
		fullName string
		wantUser string
		wantRepo string
	}{
		{"standard full name", "acme/orders", "acme", "orders"},
		{"extra segments keep first two", "acme/orders/extra", "acme", "orders"},
		{"no separator", "orders", "", "orders"},
		{"empty", "", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, repo := extractUserAndRepo(tc.fullName)
			assert.Equal(t, tc.wantUser, user)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name       string
		totalCount int
		perPage    int
		want       int
	}{
		{"exact division", 200, 100, 2},
		{"rounds up", 5, 2, 3},
		{"single partial page", 1, 100, 1},
		{"zero results", 0, 100, 0},
		{"invalid per page", 10, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, totalPages(tc.totalCount, tc.perPage))
		})
	}
}

func TestBackoffDelayGrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < 5; attempt++ {
		delay := backoffDelay(base, attempt)
		floor := base << uint(attempt)
		assert.GreaterOrEqual(t, delay, floor)
		// Jitter adds at most half the pre-jitter delay
		assert.LessOrEqual(t, delay, floor+floor/2+time.Nanosecond)
	}
}

func TestBackoffDelayIsBounded(t *testing.T) {
	base := 200 * time.Millisecond
	ceiling := 30 * time.Second

	for attempt := 0; attempt < 64; attempt++ {
		delay := backoffDelay(base, attempt)
		assert.LessOrEqual(t, delay, ceiling+ceiling/2)
		assert.Greater(t, delay, time.Duration(0))
	}
}

func TestBackoffDelayFallsBackOnZeroBase(t *testing.T) {
	delay := backoffDelay(0, 0)
	assert.GreaterOrEqual(t, delay, 200*time.Millisecond)
}
