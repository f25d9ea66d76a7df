package wizard

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/shared"
)

type saverFunc func(ctx context.Context, foodID int64, groups []menu.ExtrasGroup) ([]menu.ExtrasGroup, error)

func (f saverFunc) SaveExtrasGroups(ctx context.Context, foodID int64, groups []menu.ExtrasGroup) ([]menu.ExtrasGroup, error) {
	return f(ctx, foodID, groups)
}

func filledWizard() *Wizard {
	w := New(7)
	w.AddGroup()
	w.Groups[0].Name = "Sauces"
	w.Groups[0].Max = 2
	w.AddExtra(0)
	w.Groups[0].Extras[0] = menu.Extra{Name: "Aioli", Price: 0.8}
	return w
}

func TestNextRequiresAGroup(t *testing.T) {
	w := New(7)
	err := w.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValidation)
	assert.Equal(t, StepGroups, w.Step)

	w.AddGroup()
	require.NoError(t, w.Next())
	assert.Equal(t, StepExtras, w.Step)
}

func TestNextFromExtrasValidatesEveryGroup(t *testing.T) {
	w := filledWizard()
	w.AddGroup()
	require.NoError(t, w.Next())

	err := w.Next()
	var fields shared.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Group name is required", fields["groups.1.name"])
	assert.Equal(t, StepExtras, w.Step)

	w.Groups[1].Name = "Sides"
	require.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step)
}

func TestBoundaryStepsAreNoOps(t *testing.T) {
	w := filledWizard()
	w.Back()
	assert.Equal(t, StepGroups, w.Step)

	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.Equal(t, StepReview, w.Step)
	require.NoError(t, w.Next())
	assert.Equal(t, StepReview, w.Step)

	w.Back()
	assert.Equal(t, StepExtras, w.Step)
}

func TestCanSave(t *testing.T) {
	w := New(7)
	assert.False(t, w.CanSave(), "no groups")

	w = filledWizard()
	assert.False(t, w.CanSave(), "not on review")
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	assert.True(t, w.CanSave())

	w.RemoveGroup(0)
	assert.False(t, w.CanSave())
	assert.Equal(t, StepGroups, w.Step)
}

func TestSaveRefusedWithoutGroups(t *testing.T) {
	called := false
	saver := saverFunc(func(context.Context, int64, []menu.ExtrasGroup) ([]menu.ExtrasGroup, error) {
		called = true
		return nil, nil
	})
	_, err := New(7).Save(context.Background(), saver)
	assert.ErrorIs(t, err, ErrCannotSave)
	assert.False(t, called)
}

func TestSaveSendsGroupsAndResets(t *testing.T) {
	w := filledWizard()
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	draftID := w.ID

	var gotFood int64
	var gotGroups []menu.ExtrasGroup
	saver := saverFunc(func(_ context.Context, foodID int64, groups []menu.ExtrasGroup) ([]menu.ExtrasGroup, error) {
		gotFood, gotGroups = foodID, groups
		return groups, nil
	})
	saved, err := w.Save(context.Background(), saver)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.EqualValues(t, 7, gotFood)
	assert.Equal(t, "Aioli", gotGroups[0].Extras[0].Name)

	assert.Empty(t, w.Groups)
	assert.Equal(t, StepGroups, w.Step)
	assert.NotEqual(t, draftID, w.ID)
}

func TestSaveKeepsDraftOnFailure(t *testing.T) {
	w := filledWizard()
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	boom := errors.New("boom")

	_, err := w.Save(context.Background(), saverFunc(func(context.Context, int64, []menu.ExtrasGroup) ([]menu.ExtrasGroup, error) {
		return nil, boom
	}))
	require.ErrorIs(t, err, boom)
	assert.Len(t, w.Groups, 1)
	assert.Equal(t, StepReview, w.Step)
}

func TestAddRemoveExtraBounds(t *testing.T) {
	w := New(1)
	assert.False(t, w.AddExtra(0))
	w.AddGroup()
	assert.True(t, w.AddExtra(0))
	assert.True(t, w.AddExtra(0))
	assert.False(t, w.RemoveExtra(0, 5))
	assert.True(t, w.RemoveExtra(0, 0))
	assert.Len(t, w.Groups[0].Extras, 1)
	assert.False(t, w.RemoveGroup(3))
}

func TestBindAppliesOnlyPostedFields(t *testing.T) {
	w := filledWizard()
	w.Bind(url.Values{
		"groups.0.max":            {"3"},
		"groups.0.extras.0.price": {"1.25"},
	})
	assert.Equal(t, "Sauces", w.Groups[0].Name)
	assert.Equal(t, 3, w.Groups[0].Max)
	assert.InDelta(t, 1.25, w.Groups[0].Extras[0].Price, 0.0001)

	w.Bind(url.Values{"groups.0.extras.0.price": {"free"}})
	assert.NotEmpty(t, w.Groups[0].Validate("")["extras.0.price"])
}

func TestStoreRoundTrip(t *testing.T) {
	sess := &shared.Session{}
	w := filledWizard()
	require.NoError(t, w.Next())
	require.NoError(t, Store(sess, w))

	loaded := Load(sess, 7)
	assert.Equal(t, w.ID, loaded.ID)
	assert.Equal(t, StepExtras, loaded.Step)
	assert.Equal(t, "Sauces", loaded.Groups[0].Name)

	other := Load(sess, 8)
	assert.Empty(t, other.Groups, "a draft for another food is not reused")

	Clear(sess)
	assert.Empty(t, Load(sess, 7).Groups)
}
