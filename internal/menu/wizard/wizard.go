// Package wizard implements the three step extras-group builder used from the
// inventory screen. The draft lives in the session and reaches the API only
// on Save.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/shared"
)

// Step is the index of the active wizard panel.
type Step int

const (
	StepGroups Step = iota
	StepExtras
	StepReview
)

// lastStep is the final panel; Next is a no-op there.
const lastStep = StepReview

func (s Step) String() string {
	switch s {
	case StepGroups:
		return "groups"
	case StepExtras:
		return "extras"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ErrCannotSave is returned by Save outside the review step or without groups.
var ErrCannotSave = errors.New("wizard: nothing to save")

// Saver persists the finished groups.
type Saver interface {
	SaveExtrasGroups(ctx context.Context, foodID int64, groups []menu.ExtrasGroup) ([]menu.ExtrasGroup, error)
}

// Wizard is the in-progress extras draft for one food.
type Wizard struct {
	ID     string             `json:"id"`
	FoodID int64              `json:"food_id"`
	Step   Step               `json:"step"`
	Groups []menu.ExtrasGroup `json:"groups"`
}

// New starts an empty draft for food.
func New(foodID int64) *Wizard {
	return &Wizard{ID: uuid.NewString(), FoodID: foodID, Step: StepGroups}
}

// Next advances one step when the current panel is complete. At the last
// step it does nothing.
func (w *Wizard) Next() error {
	switch w.Step {
	case StepGroups:
		if len(w.Groups) == 0 {
			return shared.FieldErrors{"general": "Add at least one extras group"}
		}
	case StepExtras:
		if err := menu.ValidateGroups(w.Groups); err != nil {
			return err
		}
	case lastStep:
		return nil
	}
	w.Step++
	return nil
}

// Back returns to the previous step. At the first step it does nothing.
func (w *Wizard) Back() {
	if w.Step > StepGroups {
		w.Step--
	}
}

// AddGroup appends an empty group allowing one choice.
func (w *Wizard) AddGroup() {
	w.Groups = append(w.Groups, menu.ExtrasGroup{Min: 0, Max: 1})
}

// RemoveGroup drops group i. Removing the last group returns to the first step.
func (w *Wizard) RemoveGroup(i int) bool {
	if i < 0 || i >= len(w.Groups) {
		return false
	}
	w.Groups = append(w.Groups[:i], w.Groups[i+1:]...)
	if len(w.Groups) == 0 {
		w.Step = StepGroups
	}
	return true
}

// AddExtra appends an empty extra to group g.
func (w *Wizard) AddExtra(g int) bool {
	if g < 0 || g >= len(w.Groups) {
		return false
	}
	w.Groups[g].Extras = append(w.Groups[g].Extras, menu.Extra{})
	return true
}

// RemoveExtra drops extra e of group g.
func (w *Wizard) RemoveExtra(g, e int) bool {
	if g < 0 || g >= len(w.Groups) {
		return false
	}
	extras := w.Groups[g].Extras
	if e < 0 || e >= len(extras) {
		return false
	}
	w.Groups[g].Extras = append(extras[:e], extras[e+1:]...)
	return true
}

// CanSave is true only on the review step with at least one group.
func (w *Wizard) CanSave() bool {
	return w.Step == StepReview && len(w.Groups) > 0
}

// Reset discards the draft but keeps the food.
func (w *Wizard) Reset() {
	w.ID = uuid.NewString()
	w.Step = StepGroups
	w.Groups = nil
}

// Save sends the groups through saver and resets the draft on success.
func (w *Wizard) Save(ctx context.Context, saver Saver) ([]menu.ExtrasGroup, error) {
	if !w.CanSave() {
		return nil, ErrCannotSave
	}
	saved, err := saver.SaveExtrasGroups(ctx, w.FoodID, w.Groups)
	if err != nil {
		return nil, err
	}
	w.Reset()
	return saved, nil
}

// OnGroups reports whether the group panel is active.
func (w *Wizard) OnGroups() bool { return w.Step == StepGroups }

// OnExtras reports whether the extras panel is active.
func (w *Wizard) OnExtras() bool { return w.Step == StepExtras }

// OnReview reports whether the review panel is active.
func (w *Wizard) OnReview() bool { return w.Step == StepReview }
