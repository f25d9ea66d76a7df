package shared

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRangeDefaultsToToday(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 4, 0, 0, time.UTC)
	r, err := ParseDateRange(url.Values{}, now)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", r.From.Format(DateLayout))
	assert.Equal(t, "2024-05-17", r.To.Format(DateLayout))
	assert.Equal(t, 1, r.Days())
}

func TestParseDateRangeRejectsInverted(t *testing.T) {
	now := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	_, err := ParseDateRange(url.Values{"from": {"2024-05-10"}, "to": {"2024-05-01"}}, now)
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields["to"], "must not be before")

	r, err := ParseDateRange(url.Values{"from": {"2024-05-01"}, "to": {"2024-05-10"}}, now)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Days())

	q := url.Values{}
	r.Apply(q)
	assert.Equal(t, "2024-05-01", q.Get("from"))
	assert.Equal(t, "2024-05-10", q.Get("to"))
}
