// Package notifications lists member notifications and keeps the broadcast
// banner shown above every page.
package notifications

import (
	"strings"
	"time"

	"github.com/platehub/backoffice/internal/xano"
)

// Notification is one entry of the notification feed.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"type"`
	Link      string    `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt xano.Time `json:"created_at"`
}

// Banner is the broadcast message published by the platform operator.
type Banner struct {
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Link      string    `json:"link"`
	Active    bool      `json:"is_active"`
	ExpiresAt xano.Time `json:"expires_at"`
}

// Visible reports whether the banner should be shown at now.
func (b *Banner) Visible(now time.Time) bool {
	if b == nil || !b.Active || strings.TrimSpace(b.Message) == "" {
		return false
	}
	return b.ExpiresAt.IsZero() || now.Before(b.ExpiresAt.Time)
}

// Unread counts unread notifications.
func Unread(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.IsRead {
			n++
		}
	}
	return n
}
