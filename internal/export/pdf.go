// Package export renders a room's drawing log into portable formats.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/mossy-p/drawsync/internal/models"
)

// Canvas pixels to millimetres on the A4 page.
const pxToMM = 1.0 / 3.0

// PDF writes the drawing log as a single-page PDF. Strokes are drawn as
// polylines with their recorded color, thickness and opacity; raster
// brush effects (spray, shiny) are the live renderer's concern and come
// out as plain lines here.
func PDF(w io.Writer, drawings []models.DrawEvent) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	for _, d := range drawings {
		red, green, blue := hexColor(d.Color)
		doc.SetDrawColor(red, green, blue)
		doc.SetLineWidth(d.Thickness * pxToMM)
		doc.SetAlpha(d.Opacity, "Normal")

		for i := 1; i < len(d.Points); i++ {
			doc.Line(
				d.Points[i-1].X*pxToMM, d.Points[i-1].Y*pxToMM,
				d.Points[i].X*pxToMM, d.Points[i].Y*pxToMM,
			)
		}
	}

	return doc.Output(w)
}

// hexColor parses "#rrggbb", falling back to black on malformed input.
func hexColor(s string) (int, int, int) {
	var red, green, blue int
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &red, &green, &blue); err != nil {
		return 0, 0, 0
	}
	return red, green, blue
}
