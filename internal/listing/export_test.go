package listing

import "time"

// SetTickInterval shortens the countdown tick for tests.
func (h *HoldCountdown) SetTickInterval(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		h.interval = d
	}
}
