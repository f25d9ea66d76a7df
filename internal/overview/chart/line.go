package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Line renders a single series as a line with a shaded area.
func Line(width, height int, series []float64, labels []string, opts Opts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("chart: series required")
	}
	if len(series) != len(labels) {
		return "", fmt.Errorf("chart: labels length must match series")
	}
	f, err := newFrame(width, height, opts, series)
	if err != nil {
		return "", err
	}
	stroke := fallback(opts.ColorA, "#2563eb")
	fill := fallback(opts.Fill, "rgba(37,99,235,0.12)")

	xs := make([]float64, len(series))
	for i := range series {
		if len(series) == 1 {
			xs[i] = f.pad + f.w/2
			continue
		}
		xs[i] = f.pad + float64(i)*f.w/float64(len(series)-1)
	}

	var path strings.Builder
	for i, v := range series {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, xs[i], f.y(v))
	}
	d := strings.TrimSpace(path.String())

	var b strings.Builder
	f.open(&b, opts, "line", "Line chart")
	fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" stroke="none" aria-hidden="true"></path>`, d, xs[len(xs)-1], f.bottom(), xs[0], f.bottom(), fill)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"></path>`, d, stroke)
	for i, v := range series {
		if opts.Dots {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"><title>%s: %s</title></circle>`, xs[i], f.y(v), stroke, esc(labels[i]), esc(f.tick(v)))
		}
		f.label(&b, xs[i], labels[i])
	}
	f.legend(&b, [2]string{opts.SeriesA, stroke})
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
