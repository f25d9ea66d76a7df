package audit

import (
	"encoding/csv"
	"io"
	"time"
)

// WriteCSV writes entries with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Time", "User", "Action", "Entity", "Entity ID", "Details", "IP address"}); err != nil {
		return err
	}
	for _, e := range entries {
		at := ""
		if !e.CreatedAt.IsZero() {
			at = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		if err := writer.Write([]string{at, e.UserName, e.Action, e.Entity, e.EntityID, e.Details, e.IPAddress}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
