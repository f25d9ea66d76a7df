package reports

import "time"

// SetClockForTest pins the clock used for default date ranges.
func (h *Handler) SetClockForTest(now func() time.Time) {
	h.now = now
}
