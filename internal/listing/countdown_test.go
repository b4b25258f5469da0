package listing_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/listing"
)

func TestHoldCountdown_ExpiresExactlyOnce(t *testing.T) {
	var expiries int64
	countdown := listing.NewHoldCountdown(3*time.Millisecond, nil, func() {
		atomic.AddInt64(&expiries, 1)
	})
	countdown.SetTickInterval(time.Millisecond)

	countdown.Start()

	assert.Eventually(t, func() bool { return countdown.Expired() }, time.Second, time.Millisecond)
	assert.Equal(t, time.Duration(0), countdown.Remaining())

	// Stop after expiry is a no-op and must not fire anything new.
	countdown.Stop()
	countdown.Start()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int64(1), atomic.LoadInt64(&expiries))
}

func TestHoldCountdown_TicksReportRemaining(t *testing.T) {
	var ticks int64
	countdown := listing.NewHoldCountdown(5*time.Millisecond, func(remaining time.Duration) {
		atomic.AddInt64(&ticks, 1)
	}, nil)
	countdown.SetTickInterval(time.Millisecond)

	countdown.Start()

	assert.Eventually(t, func() bool { return countdown.Expired() }, time.Second, time.Millisecond)
	assert.GreaterOrEqual(t, atomic.LoadInt64(&ticks), int64(2))
}

func TestHoldCountdown_StopPreventsExpiry(t *testing.T) {
	var expired int64
	countdown := listing.NewHoldCountdown(time.Hour, nil, func() {
		atomic.AddInt64(&expired, 1)
	})

	countdown.Start()
	countdown.Stop()
	countdown.Stop() // idempotent

	assert.False(t, countdown.Expired())
	assert.Equal(t, int64(0), atomic.LoadInt64(&expired))
	assert.Equal(t, time.Hour, countdown.Remaining())
}
