package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterReserve(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewRateLimiter(10*time.Second, clock.now)

	require.NoError(t, l.Reserve("single"))

	err := l.Reserve("single")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))

	// call types are tracked independently
	require.NoError(t, l.Reserve("bulk"))

	clock.advance(9 * time.Second)
	assert.Error(t, l.Reserve("single"))

	clock.advance(1 * time.Second)
	assert.NoError(t, l.Reserve("single"))
}

func TestRateLimiterFailedReserveDoesNotConsumeSlot(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewRateLimiter(10*time.Second, clock.now)

	require.NoError(t, l.Reserve("single"))
	clock.advance(6 * time.Second)
	require.Error(t, l.Reserve("single"))
	clock.advance(4 * time.Second)
	// the refused attempt above must not have pushed the window forward
	assert.NoError(t, l.Reserve("single"))
}
