package listing

import (
	"sync"
	"time"
)

// HoldCountdown drives the booking-preview price hold timer. It ticks once
// per second, reports the remaining time, and fires a terminal expiry
// callback exactly once when the hold runs out. Reaching zero is a terminal
// transition, not a cancellable one.
type HoldCountdown struct {
	onTick   func(remaining time.Duration)
	onExpire func()
	interval time.Duration

	mu        sync.Mutex
	remaining time.Duration
	stopCh    chan struct{}
	running   bool
	expired   bool
	wg        sync.WaitGroup
}

// NewHoldCountdown prepares a countdown for a hold duration. Callbacks may
// be nil.
func NewHoldCountdown(hold time.Duration, onTick func(remaining time.Duration), onExpire func()) *HoldCountdown {
	return &HoldCountdown{
		onTick:    onTick,
		onExpire:  onExpire,
		interval:  time.Second,
		remaining: hold,
	}
}

// Start begins ticking. Starting an already running or expired countdown is
// a no-op.
func (h *HoldCountdown) Start() {
	h.mu.Lock()
	if h.running || h.expired {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.stopCh = make(chan struct{})
	stopCh := h.stopCh
	h.mu.Unlock()

	h.wg.Add(1)
	go h.run(stopCh)
}

func (h *HoldCountdown) run(stopCh chan struct{}) {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			h.mu.Lock()
			select {
			case <-stopCh:
				// Stop raced with this tick; the hold was released.
				h.mu.Unlock()
				return
			default:
			}
			h.remaining -= h.interval
			remaining := h.remaining
			if remaining > 0 {
				h.mu.Unlock()
				if h.onTick != nil {
					h.onTick(remaining)
				}
				continue
			}
			h.remaining = 0
			h.expired = true
			h.running = false
			h.mu.Unlock()
			if h.onTick != nil {
				h.onTick(0)
			}
			if h.onExpire != nil {
				h.onExpire()
			}
			return
		}
	}
}

// Stop tears the countdown down before expiry. Stopping after expiry or a
// prior Stop is a no-op; the expiry callback never fires after Stop.
func (h *HoldCountdown) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	close(h.stopCh)
	h.mu.Unlock()
	h.wg.Wait()
}

// Remaining reports the time left on the hold.
func (h *HoldCountdown) Remaining() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.remaining
}

// Expired reports whether the hold ran out.
func (h *HoldCountdown) Expired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expired
}
