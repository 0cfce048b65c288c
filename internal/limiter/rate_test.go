package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestRateLimiterRecoversAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1)

	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	time.Sleep(1100 * time.Millisecond)
	assert.True(t, rl.Allow())
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(1)
	assert.True(t, rl.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx, 10*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterWaitReturnsWhenAllowed(t *testing.T) {
	rl := NewRateLimiter(2)

	err := rl.Wait(context.Background(), 10*time.Millisecond)
	assert.NoError(t, err)
}
