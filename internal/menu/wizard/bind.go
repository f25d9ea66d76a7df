package wizard

import (
	"net/url"
	"strconv"
	"strings"
)

// Bind copies posted field values into the draft. Only keys present in the
// form are applied, so each step posts just the inputs it shows.
func (w *Wizard) Bind(form url.Values) {
	for i := range w.Groups {
		prefix := "groups." + strconv.Itoa(i) + "."
		g := &w.Groups[i]
		if v, ok := lookup(form, prefix+"name"); ok {
			g.Name = strings.TrimSpace(v)
		}
		if v, ok := lookup(form, prefix+"min"); ok {
			g.Min = atoi(v, g.Min)
		}
		if v, ok := lookup(form, prefix+"max"); ok {
			g.Max = atoi(v, g.Max)
		}
		for j := range g.Extras {
			ep := prefix + "extras." + strconv.Itoa(j) + "."
			if v, ok := lookup(form, ep+"name"); ok {
				g.Extras[j].Name = strings.TrimSpace(v)
			}
			if v, ok := lookup(form, ep+"price"); ok {
				if price, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
					g.Extras[j].Price = price
				} else if strings.TrimSpace(v) == "" {
					g.Extras[j].Price = 0
				} else {
					// Unparseable prices fail validation like negative ones.
					g.Extras[j].Price = -1
				}
			}
		}
	}
}

func lookup(form url.Values, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func atoi(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}
