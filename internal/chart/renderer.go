// Package chart renders the top-funded-institutions horizontal bar chart.
//
// The layout reproduces the original visualization: bars ranked largest at
// the top, funding gridlines every 100M up to 1.1B with the tick labels above
// the plot area, no category tick marks or labels, and institution names
// split by rank position between inside-the-bar (white) and past-the-bar
// (bar-colored) placement.
package chart

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/emmanuelprah/Tidytuesday/internal/config"
	"github.com/emmanuelprah/Tidytuesday/internal/grants"
)

const (
	chartTitle   = "Where Science Foundation Ireland's money goes"
	chartCaption = "Source: Science Foundation Ireland grant commitments, TidyTuesday 2026-02-24"

	barFillHex      = "#156082"
	gridlineHex     = "#D9D9D9"
	axisLineHex     = "#3B3B3B"
	tickLabelHex    = "#5A5A5A"
	titleHex        = "#1A1A1A"
	subtitleHex     = "#4D4D4D"
	captionHex      = "#767676"
	insideLabelHex  = "#FFFFFF"
	backgroundWhite = "#FFFFFF"

	// Scale expansion past the axis maximum: none on the left, 5% on the right
	rightExpansion = 0.05

	// Bar thickness as a fraction of each category slot
	barThickness = 0.75
)

// Renderer draws the aggregated institution totals onto a raster canvas
// sized by the configured physical dimensions and resolution.
type Renderer struct {
	cfg     config.ChartConfig
	logger  *slog.Logger
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
}

// NewRenderer creates a renderer using the embedded Go fonts
func NewRenderer(cfg config.ChartConfig, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	italic, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse italic font: %w", err)
	}

	return &Renderer{cfg: cfg, logger: logger, regular: regular, bold: bold, italic: italic}, nil
}

// face builds a font face at the given point size for the configured DPI
func (r *Renderer) face(f *truetype.Font, points float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: points, DPI: r.cfg.DPI})
}

// Render draws the chart for the given totals, ordered best funded first,
// and returns the finished image ready for export.
func (r *Renderer) Render(totals []grants.InstitutionTotal) (image.Image, error) {
	if len(totals) == 0 {
		return nil, fmt.Errorf("no institution totals to chart")
	}

	in := r.cfg.DPI // pixels per inch
	width := int(r.cfg.WidthInches * in)
	height := int(r.cfg.HeightInches * in)

	dc := gg.NewContext(width, height)
	dc.SetHexColor(backgroundWhite)
	dc.Clear()

	// Plot area: the title block and tick labels sit above it,
	// the caption below
	plotLeft := 0.35 * in
	plotRight := float64(width) - 0.45*in
	plotTop := 1.15 * in
	plotBottom := float64(height) - 0.50*in

	// Zero left padding and 5% right expansion: the axis maximum maps short
	// of the plot's right edge
	span := AxisMax * (1 + rightExpansion)
	xFor := func(v float64) float64 {
		return plotLeft + v/span*(plotRight-plotLeft)
	}

	r.drawGrid(dc, xFor, plotTop, plotBottom, in)
	r.drawBars(dc, totals, xFor, plotTop, plotBottom, in)

	// Category axis line, drawn over the bar bases
	dc.SetHexColor(axisLineHex)
	dc.SetLineWidth(0.008 * in)
	dc.DrawLine(xFor(0), plotTop, xFor(0), plotBottom)
	dc.Stroke()

	r.drawTitleBlock(dc, plotLeft, float64(width), float64(height), in)

	r.logger.Debug("Rendered chart",
		slog.Int("width_px", width),
		slog.Int("height_px", height),
		slog.Int("bars", len(totals)))

	return dc.Image(), nil
}

// drawGrid draws the vertical funding gridlines with their labels above the
// plot area
func (r *Renderer) drawGrid(dc *gg.Context, xFor func(float64) float64, plotTop, plotBottom, in float64) {
	tickFace := r.face(r.regular, 8.5)

	for _, v := range TickValues(AxisMax, TickStep) {
		x := xFor(v)

		dc.SetHexColor(gridlineHex)
		dc.SetLineWidth(0.004 * in)
		dc.DrawLine(x, plotTop, x, plotBottom)
		dc.Stroke()

		dc.SetFontFace(tickFace)
		dc.SetHexColor(tickLabelHex)
		dc.DrawStringAnchored(TickLabel(v), x, plotTop-0.16*in, 0.5, 0)
	}
}

// drawBars draws one horizontal bar per institution, best funded at the top,
// with the rank-position label split
func (r *Renderer) drawBars(dc *gg.Context, totals []grants.InstitutionTotal, xFor func(float64) float64, plotTop, plotBottom, in float64) {
	labelFace := r.face(r.regular, 10)
	placements := Placements(len(totals), r.cfg.InsideLabels)
	nudge := 0.06 * in

	slot := (plotBottom - plotTop) / float64(len(totals))
	barH := slot * barThickness

	for i, total := range totals {
		yTop := plotTop + float64(i)*slot + (slot-barH)/2
		yMid := yTop + barH/2

		dc.SetHexColor(barFillHex)
		dc.DrawRectangle(xFor(0), yTop, xFor(total.TotalFunding)-xFor(0), barH)
		dc.Fill()

		dc.SetFontFace(labelFace)
		if placements[i] == LabelInside {
			dc.SetHexColor(insideLabelHex)
			dc.DrawStringAnchored(total.ResearchBody, xFor(0)+nudge, yMid, 0, 0.35)
		} else {
			dc.SetHexColor(barFillHex)
			dc.DrawStringAnchored(total.ResearchBody, xFor(total.TotalFunding)+nudge, yMid, 0, 0.35)
		}
	}
}

// drawTitleBlock draws the static title, subtitle and caption text
func (r *Renderer) drawTitleBlock(dc *gg.Context, plotLeft, width, height, in float64) {
	subtitle := fmt.Sprintf("Top %d research bodies by total current commitment, in euro", r.cfg.TopN)

	dc.SetFontFace(r.face(r.bold, 15))
	dc.SetHexColor(titleHex)
	dc.DrawString(chartTitle, plotLeft, 0.42*in)

	dc.SetFontFace(r.face(r.regular, 10))
	dc.SetHexColor(subtitleHex)
	dc.DrawString(subtitle, plotLeft, 0.68*in)

	dc.SetFontFace(r.face(r.italic, 7.5))
	dc.SetHexColor(captionHex)
	dc.DrawStringAnchored(chartCaption, width-0.45*in, height-0.22*in, 1, 0)
}
