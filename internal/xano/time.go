package xano

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Time decodes the timestamps Xano emits: epoch milliseconds, RFC 3339 strings or null.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms).UTC()
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		t.Time = parsed.UTC()
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// MarshalJSON writes epoch milliseconds, the format the API accepts.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}
