// Package chart draws the overview charts as inline SVG.
package chart

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Defaults for the overview charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 32.0
	DefaultTicks   = 5
)

// Opts customises a chart.
type Opts struct {
	Title       string
	Description string
	// Labels for the first and second series, shown in the legend.
	SeriesA string
	SeriesB string
	ColorA  string
	ColorB  string
	Fill    string
	Padding float64
	Ticks   int
	Dots    bool
	// Tick formats axis values; defaults to compact numbers.
	Tick func(float64) string
}

// frame is the plotting area shared by both chart kinds.
type frame struct {
	width, height int
	pad           float64
	w, h          float64
	min, max      float64
	ticks         int
	tick          func(float64) string
}

func newFrame(width, height int, opts Opts, values ...[]float64) (*frame, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	f := &frame{width: width, height: height, pad: opts.Padding, ticks: opts.Ticks, tick: opts.Tick}
	if f.pad <= 0 {
		f.pad = DefaultPadding
	}
	if f.ticks <= 0 {
		f.ticks = DefaultTicks
	}
	if f.tick == nil {
		f.tick = Compact
	}
	f.w = float64(width) - 2*f.pad
	f.h = float64(height) - 2*f.pad
	if f.w <= 0 || f.h <= 0 {
		return nil, fmt.Errorf("chart: viewport too small")
	}
	for _, series := range values {
		for _, v := range series {
			f.min = math.Min(f.min, v)
			f.max = math.Max(f.max, v)
		}
	}
	if math.Abs(f.max-f.min) < 1e-9 {
		f.max = f.min + 1
	}
	return f, nil
}

func (f *frame) y(v float64) float64 {
	return f.pad + f.h - (v-f.min)*f.h/(f.max-f.min)
}

func (f *frame) bottom() float64 { return f.pad + f.h }

func (f *frame) open(b *strings.Builder, opts Opts, kind, defaultTitle string) {
	titleID := slug(opts.Title) + "-" + kind + "-title"
	descID := slug(opts.Title) + "-" + kind + "-desc"
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img" aria-labelledby="%s %s">`, f.width, f.height, titleID, descID)
	fmt.Fprintf(b, `<title id="%s">%s</title>`, titleID, esc(fallback(opts.Title, defaultTitle)))
	fmt.Fprintf(b, `<desc id="%s">%s</desc>`, descID, esc(opts.Description))
	for i := 0; i <= f.ticks; i++ {
		ratio := float64(i) / float64(f.ticks)
		value := f.min + (f.max-f.min)*ratio
		y := f.y(value)
		fmt.Fprintf(b, `<line class="grid" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#e2e8f0" stroke-dasharray="2,4" aria-hidden="true"></line>`, f.pad, y, f.pad+f.w, y)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="#475569" font-size="10" text-anchor="end">%s</text>`, f.pad-6, y+4, esc(f.tick(value)))
	}
	fmt.Fprintf(b, `<g stroke="#475569" aria-hidden="true"><line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"></line><line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"></line></g>`,
		f.pad, f.pad, f.pad, f.bottom(), f.pad, f.y(0), f.pad+f.w, f.y(0))
}

func (f *frame) label(b *strings.Builder, x float64, text string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="#475569" font-size="10" text-anchor="middle">%s</text>`, x, f.bottom()+14, esc(text))
}

func (f *frame) legend(b *strings.Builder, entries ...[2]string) {
	x := f.pad
	y := math.Max(f.pad-12, 12)
	for _, e := range entries {
		if e[0] == "" {
			continue
		}
		fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="10" height="10" fill="%s"></rect>`, x, y-8, e[1])
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="#475569" font-size="10">%s</text>`, x+14, y, esc(e[0]))
		x += 100
	}
}

// Compact formats axis values as 1.2k or 3.4M.
func Compact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	case math.Abs(v-math.Round(v)) < 1e-9:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func esc(s string) string { return template.HTMLEscapeString(s) }

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func slug(base string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '-'
	}, strings.ToLower(strings.TrimSpace(base)))
	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		return "chart"
	}
	return cleaned
}
