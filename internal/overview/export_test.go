package overview

import "time"

// SetClockForTest pins the clock used for the default range.
func (h *Handler) SetClockForTest(now func() time.Time) {
	h.now = now
}
