package chart

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Bars renders one or two series as grouped bars.
func Bars(width, height int, seriesA, seriesB []float64, labels []string, opts Opts) (template.HTML, error) {
	if len(seriesA) == 0 && len(seriesB) == 0 {
		return "", fmt.Errorf("chart: at least one series required")
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("chart: labels required")
	}
	for _, s := range [][]float64{seriesA, seriesB} {
		if len(s) > 0 && len(s) != len(labels) {
			return "", fmt.Errorf("chart: series length must match labels")
		}
	}
	f, err := newFrame(width, height, opts, seriesA, seriesB)
	if err != nil {
		return "", err
	}
	colorA := fallback(opts.ColorA, "#0ea5e9")
	colorB := fallback(opts.ColorB, "#f97316")

	group := f.w / float64(len(labels))
	bar := group / 3

	var b strings.Builder
	f.open(&b, opts, "bar", "Bar chart")
	for i, label := range labels {
		x := f.pad + float64(i)*group
		if len(seriesA) > 0 {
			f.bar(&b, x+bar*0.3, bar, seriesA[i], colorA, opts.SeriesA+" "+label)
		}
		if len(seriesB) > 0 {
			f.bar(&b, x+bar*1.4, bar, seriesB[i], colorB, opts.SeriesB+" "+label)
		}
		f.label(&b, x+group/2, label)
	}
	legend := [][2]string{}
	if len(seriesA) > 0 {
		legend = append(legend, [2]string{opts.SeriesA, colorA})
	}
	if len(seriesB) > 0 {
		legend = append(legend, [2]string{opts.SeriesB, colorB})
	}
	f.legend(&b, legend...)
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// bar draws one rectangle from the zero line, clamped to the plot area.
func (f *frame) bar(b *strings.Builder, x, width, value float64, color, label string) {
	zero := f.y(0)
	top := math.Max(math.Min(f.y(value), zero), f.pad)
	bottom := math.Min(math.Max(f.y(value), zero), f.bottom())
	fmt.Fprintf(b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" aria-label="%s"></rect>`,
		x, top, width, math.Max(bottom-top, 0), color, esc(strings.TrimSpace(label)))
}
