// Package render turns chart geometry into SVG markup.
package render

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/Simplici0/breakeven/internal/chart"
)

// SVG writes g as a standalone <svg> element. Regions are emitted first so every
// other layer is drawn over them.
func SVG(w io.Writer, g chart.Geometry) error {
	return SVGLinked(w, g, "")
}

// SVGLinked is SVG with the fixed-cost hit area wrapped in a link to fixedHref.
// An empty href leaves the hit area unlinked.
func SVGLinked(w io.Writer, g chart.Geometry, fixedHref string) error {
	bw := bufio.NewWriter(w)
	b := g.Bounds

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" id="chart" viewBox="0 0 %s %s" role="img" aria-label="Break-even chart">`+"\n",
		num(b.Width), num(b.Height))

	if g.Profit != nil {
		writePolygon(bw, g.Profit)
	}
	if g.Loss != nil {
		writePolygon(bw, g.Loss)
	}

	bw.WriteString("<g>\n")
	for _, l := range g.Gridlines {
		writeLine(bw, l)
	}
	for _, t := range g.TickLabels {
		writeText(bw, t)
	}
	bw.WriteString("</g>\n<g>\n")
	for _, l := range g.Axes {
		writeLine(bw, l)
	}
	bw.WriteString("</g>\n")
	for _, t := range g.AxisTitles {
		writeText(bw, t)
	}

	writeLine(bw, g.FixedLine)
	writePolyline(bw, g.TotalCostLine)
	writePolyline(bw, g.RevenueLine)

	writeHitArea(bw, g.FixedHitArea, fixedHref)

	if m := g.BEP; m != nil {
		fmt.Fprintf(bw, `<circle cx="%s" cy="%s" r="%s" class="%s" role="img" aria-label="%s"/>`+"\n",
			num(m.Center.X), num(m.Center.Y), num(m.Radius), chart.ClassBEP, html.EscapeString(m.Label))
	}

	if mos := g.MOS; mos != nil {
		writeLine(bw, mos.Line)
		fmt.Fprintf(bw, `<path d="%s" class="%s"/>`+"\n", BracePath(mos.Brace), chart.ClassMOSBrace)
		writeText(bw, mos.Label)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// BracePath returns the SVG path data for a margin-of-safety brace.
func BracePath(br chart.Brace) string {
	return fmt.Sprintf("M %s %s q 10 10 20 0 L %s %s q 10 -10 20 0",
		num(br.X1), num(br.Y), num(br.X2-20), num(br.Y))
}

// Points formats pixel points as an SVG points attribute.
func Points(pts []chart.Point) string {
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		parts = append(parts, num(p.X)+","+num(p.Y))
	}
	return strings.Join(parts, " ")
}

func writeLine(w *bufio.Writer, l chart.Line) {
	fmt.Fprintf(w, `<line x1="%s" y1="%s" x2="%s" y2="%s" class="%s"%s/>`+"\n",
		num(l.From.X), num(l.From.Y), num(l.To.X), num(l.To.Y), l.Class, ariaLabel(l.Label))
}

func writePolyline(w *bufio.Writer, l chart.Line) {
	fmt.Fprintf(w, `<polyline points="%s" fill="none" class="%s"%s/>`+"\n",
		Points([]chart.Point{l.From, l.To}), l.Class, ariaLabel(l.Label))
}

func writePolygon(w *bufio.Writer, p *chart.Polygon) {
	fmt.Fprintf(w, `<polygon points="%s" class="%s"/>`+"\n", Points(p.Points), p.Class)
}

func writeHitArea(w *bufio.Writer, r chart.Rect, href string) {
	if href != "" {
		fmt.Fprintf(w, `<a href="%s" aria-label="Fixed cost line">`, html.EscapeString(href))
	}
	fmt.Fprintf(w, `<rect x="%s" y="%s" width="%s" height="%s" fill="transparent" class="%s"/>`,
		num(r.X), num(r.Y), num(r.W), num(r.H), chart.ClassFixedHit)
	if href != "" {
		w.WriteString("</a>")
	}
	w.WriteString("\n")
}

func writeText(w *bufio.Writer, t chart.Text) {
	attrs := ""
	if t.Class != "" {
		attrs += ` class="` + t.Class + `"`
	}
	if t.Anchor != "" {
		attrs += ` text-anchor="` + t.Anchor + `"`
	}
	if t.Rotate != 0 {
		attrs += fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(t.Rotate), num(t.At.X), num(t.At.Y))
	}
	fmt.Fprintf(w, `<text x="%s" y="%s"%s>%s</text>`+"\n", num(t.At.X), num(t.At.Y), attrs, html.EscapeString(t.Value))
}

func ariaLabel(label string) string {
	if label == "" {
		return ""
	}
	return ` aria-label="` + html.EscapeString(label) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
