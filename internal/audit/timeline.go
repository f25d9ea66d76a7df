// Package audit shows the restaurant's activity log kept by the API.
package audit

import (
	"net/url"
	"strings"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Entry is one audit log record.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	UserName  string    `json:"user_name"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	CreatedAt xano.Time `json:"created_at"`
}

// Filters narrow the timeline.
type Filters struct {
	Range   shared.DateRange
	Actor   string
	Entity  string
	Action  string
	Page    int
	PerPage int
}

// Apply writes the filters as query parameters, pagination excluded.
func (f Filters) Apply(q url.Values) {
	f.Range.Apply(q)
	for key, value := range map[string]string{"actor": f.Actor, "entity": f.Entity, "action": f.Action} {
		if v := strings.TrimSpace(value); v != "" {
			q.Set(key, v)
		}
	}
}

// Result is one page of the timeline.
type Result struct {
	Entries    []Entry
	Pagination shared.Pagination
}
