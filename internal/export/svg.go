package export

import (
	"bytes"
	"fmt"
)

// EquityCurveSVG renders the equity trajectory as a single-line SVG chart.
// X is the step index, Y the equity value.
func EquityCurveSVG(values []float64, w, h int, title string) []byte {
	if w <= 0 {
		w = 900
	}
	if h <= 0 {
		h = 300
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>", w, h, w, h)
	b.WriteString("<rect width='100%' height='100%' fill='#ffffff'/>")
	fmt.Fprintf(&b, "<text x='16' y='18' fill='#24292f' font-family='sans-serif' font-size='14'>%s</text>", title)

	if len(values) > 1 {
		miny, maxy := values[0], values[0]
		for _, v := range values {
			if v < miny {
				miny = v
			}
			if v > maxy {
				maxy = v
			}
		}
		plotW, plotH := float64(w-80), float64(h-60)
		sx := plotW / float64(len(values)-1)
		sy := plotH / (maxy - miny + 1e-9)

		b.WriteString("<g transform='translate(40,20)'>")
		fmt.Fprintf(&b, "<line x1='0' y1='0' x2='0' y2='%.0f' stroke='#d0d7de'/>", plotH)
		fmt.Fprintf(&b, "<line x1='0' y1='%.0f' x2='%.0f' y2='%.0f' stroke='#d0d7de'/>", plotH, plotW, plotH)
		b.WriteString("<polyline fill='none' stroke='#1f6feb' stroke-width='1.5' points='")
		for i, v := range values {
			x := float64(i) * sx
			y := plotH - (v-miny)*sy
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.2f,%.2f", x, y)
		}
		b.WriteString("'/>")
		b.WriteString("</g>")
	}

	b.WriteString("</svg>")
	return b.Bytes()
}
