package branches

import (
	"strings"
	"time"

	"github.com/platehub/backoffice/internal/shared"
)

const clockLayout = "15:04"

var validate = shared.NewValidator()

// Validate checks required fields and that every open day opens before it closes.
func Validate(form BranchForm) error {
	errs := shared.FieldErrors{}
	if err := validate.Struct(form); err != nil {
		errs = shared.ValidationFieldErrors(err)
	}
	for _, h := range form.OpeningHours {
		if h.Closed {
			continue
		}
		if msg := checkHours(h.Open, h.Close); msg != "" {
			errs["hours_"+h.Day] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkHours(opens, closes string) string {
	opensAt, err := time.Parse(clockLayout, strings.TrimSpace(opens))
	if err != nil {
		return "Opening time must look like 09:00"
	}
	closesAt, err := time.Parse(clockLayout, strings.TrimSpace(closes))
	if err != nil {
		return "Closing time must look like 22:00"
	}
	if !opensAt.Before(closesAt) {
		return "Opening time must be before closing time"
	}
	return ""
}
