package wizard

import (
	"encoding/json"

	"github.com/platehub/backoffice/internal/shared"
)

// SessionKey holds the serialised draft.
const SessionKey = "wizard:extras"

// Load returns the stored draft for food, or a fresh one when the session
// holds nothing or a draft for another food.
func Load(sess *shared.Session, foodID int64) *Wizard {
	raw := sess.Get(SessionKey)
	if raw == "" {
		return New(foodID)
	}
	var w Wizard
	if err := json.Unmarshal([]byte(raw), &w); err != nil || w.FoodID != foodID {
		return New(foodID)
	}
	if w.Step < StepGroups || w.Step > lastStep {
		w.Step = StepGroups
	}
	return &w
}

// Store writes the draft to the session.
func Store(sess *shared.Session, w *Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	sess.Set(SessionKey, string(raw))
	return nil
}

// Clear drops any stored draft.
func Clear(sess *shared.Session) {
	sess.Delete(SessionKey)
}
