package depthplot

import (
	"fmt"
	"math"
	"strings"

	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/zones"
)

// Kind is the figure kind challenges use to select this renderer.
const Kind = "depthplot"

// Defect ids double as rubric ids in shipped packs, so a zone's claimable
// set lines up with what the renderer can actually plant there.
const (
	DefectMissingXLabel  = "missing-x-label"
	DefectMissingYUnits  = "missing-y-units"
	DefectTruncatedBase  = "truncated-baseline"
	DefectClippedPeak    = "clipped-peak"
	DefectLegendSwapped  = "legend-swapped"
	DefectWrongTitle     = "wrong-title"
	DefectGridClutter    = "gridline-clutter"
	DefectSetpointOffset = "setpoint-offset"
)

const (
	ZoneTitle    = "title"
	ZoneYAxis    = "y-axis"
	ZoneXAxis    = "x-axis"
	ZonePlot     = "plot"
	ZoneLegend   = "legend"
	ZoneSetpoint = "setpoint-band"
)

// clipCap flattens the overshoot when the clipped-peak defect is planted.
const clipCap = 1.08

// Renderer draws the step response of a depth controller: an underdamped
// second-order curve rising to a dashed setpoint line, with axes, legend
// and title. Defects named in the figure spec degrade specific parts of
// the drawing; everything else stays correct so the defects are the only
// things to find.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

func KnownDefects() []string {
	return []string{
		DefectMissingXLabel,
		DefectMissingYUnits,
		DefectTruncatedBase,
		DefectClippedPeak,
		DefectLegendSwapped,
		DefectWrongTitle,
		DefectGridClutter,
		DefectSetpointOffset,
	}
}

type figure struct {
	defects  map[string]bool
	zeta     float64
	tEnd     float64
	depthM   float64
	yMin     float64
	yMax     float64
	setpoint float64
}

func parseFigure(spec content.FigureSpec) figure {
	f := figure{
		defects:  map[string]bool{},
		zeta:     0.45,
		tEnd:     10,
		depthM:   100,
		yMin:     0,
		yMax:     1.4,
		setpoint: 1.0,
	}
	for _, d := range spec.Defects {
		f.defects[d] = true
	}
	if v, ok := spec.Params["zeta"]; ok && v > 0 && v < 1 {
		f.zeta = v
	}
	if v, ok := spec.Params["t_end"]; ok && v > 0 {
		f.tEnd = v
	}
	if v, ok := spec.Params["depth_m"]; ok && v > 0 {
		f.depthM = v
	}
	if f.defects[DefectTruncatedBase] {
		f.yMin = 0.4
	}
	if f.defects[DefectSetpointOffset] {
		f.setpoint = 0.88
	}
	return f
}

type layout struct {
	plotLeft, plotTop, plotW, plotH int
	axisRow, tickRow, captionRow    int
	legend                          zones.Rect
	spRow                           int
	yMin, yMax                      float64
	tooSmall                        bool
}

func computeLayout(w, h int, f figure) layout {
	ly := layout{yMin: f.yMin, yMax: f.yMax}
	if w < 28 || h < 12 {
		ly.tooSmall = true
		return ly
	}
	ly.plotLeft = 8
	ly.plotTop = 2
	ly.captionRow = h - 1
	ly.tickRow = h - 2
	ly.axisRow = h - 3
	ly.plotH = ly.axisRow - ly.plotTop
	ly.plotW = w - ly.plotLeft - 2
	ly.legend = zones.Rect{X: w - 21, Y: ly.plotTop + 1, W: 20, H: 4}
	if ly.legend.X < ly.plotLeft {
		ly.legend.X = ly.plotLeft
	}
	ly.spRow = ly.valueToRow(f.setpoint)
	return ly
}

func (ly layout) valueToRow(v float64) int {
	frac := (v - ly.yMin) / (ly.yMax - ly.yMin)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return ly.plotTop + ly.plotH - 1 - int(math.Round(frac*float64(ly.plotH-1)))
}

// stepResponse is the unit step response of an underdamped second-order
// system with natural frequency 1.
func stepResponse(t, zeta float64) float64 {
	if t <= 0 {
		return 0
	}
	wd := math.Sqrt(1 - zeta*zeta)
	return 1 - math.Exp(-zeta*t)/wd*math.Sin(wd*t+math.Acos(zeta))
}

func (r *Renderer) RenderContent(c *canvas.Canvas, width, height int, ch content.Challenge) {
	f := parseFigure(ch.Figure)
	ly := computeLayout(width, height, f)
	if ly.tooSmall {
		c.WriteString(1, 1, "viewport too small for figure")
		return
	}
	drawGrid(c, ly, f)
	drawSetpoint(c, ly)
	drawCurve(c, ly, f)
	drawAxes(c, ly, f)
	drawLegend(c, ly, f)
	drawTitle(c, width, f)
}

func (r *Renderer) ComputeZones(width, height int, ch content.Challenge) []zones.Zone {
	f := parseFigure(ch.Figure)
	ly := computeLayout(width, height, f)
	if ly.tooSmall {
		return nil
	}
	plot := zones.Rect{X: ly.plotLeft, Y: ly.plotTop, W: ly.plotW, H: ly.plotH}
	band := zones.Rect{X: ly.plotLeft, Y: ly.spRow - 1, W: ly.plotW, H: 3}.Clip(plot)
	return []zones.Zone{
		{ID: ZoneLegend, Rect: ly.legend, RubricIDs: []string{DefectLegendSwapped}},
		{ID: ZoneSetpoint, Rect: band, RubricIDs: []string{DefectSetpointOffset}},
		{ID: ZonePlot, Rect: plot, RubricIDs: []string{DefectClippedPeak, DefectGridClutter, DefectTruncatedBase}},
		{ID: ZoneTitle, Rect: zones.Rect{X: 0, Y: 0, W: width, H: 1}, RubricIDs: []string{DefectWrongTitle}},
		{ID: ZoneYAxis, Rect: zones.Rect{X: 0, Y: 1, W: ly.plotLeft, H: ly.axisRow - 1}, RubricIDs: []string{DefectMissingYUnits, DefectTruncatedBase}},
		{ID: ZoneXAxis, Rect: zones.Rect{X: ly.plotLeft - 1, Y: ly.axisRow, W: ly.plotW + 2, H: 3}, RubricIDs: []string{DefectMissingXLabel}},
	}
}

func drawGrid(c *canvas.Canvas, ly layout, f figure) {
	rowStep, colStep := 4, 6
	if f.defects[DefectGridClutter] {
		rowStep, colStep = 1, 2
	}
	for row := ly.plotTop; row < ly.plotTop+ly.plotH; row += rowStep {
		for col := ly.plotLeft; col < ly.plotLeft+ly.plotW; col += colStep {
			c.Set(col, row, '·')
			c.SetTint(col, row, canvas.TintDim)
		}
	}
}

func drawSetpoint(c *canvas.Canvas, ly layout) {
	for col := ly.plotLeft; col < ly.plotLeft+ly.plotW; col += 2 {
		c.Set(col, ly.spRow, '┄')
		c.SetTint(col, ly.spRow, canvas.TintReference)
	}
}

func drawCurve(c *canvas.Canvas, ly layout, f figure) {
	for i := 0; i < ly.plotW; i++ {
		t := f.tEnd * float64(i) / float64(ly.plotW-1)
		v := stepResponse(t, f.zeta)
		if f.defects[DefectClippedPeak] && v > clipCap {
			v = clipCap
		}
		row := ly.valueToRow(v)
		c.Set(ly.plotLeft+i, row, '•')
		c.SetTint(ly.plotLeft+i, row, canvas.TintAccent)
	}
}

func drawAxes(c *canvas.Canvas, ly layout, f figure) {
	axisX := ly.plotLeft - 1
	for row := ly.plotTop; row < ly.axisRow; row++ {
		c.Set(axisX, row, '│')
	}
	for col := ly.plotLeft; col < ly.plotLeft+ly.plotW; col++ {
		c.Set(col, ly.axisRow, '─')
	}
	c.Set(axisX, ly.axisRow, '└')

	yTicks := []struct {
		row int
		v   float64
	}{
		{ly.plotTop, ly.yMax},
		{ly.spRow, f.setpoint},
		{ly.plotTop + ly.plotH - 1, ly.yMin},
	}
	for _, tk := range yTicks {
		c.Set(axisX, tk.row, '┤')
		c.WriteString(0, tk.row, fmt.Sprintf("%6.0f", tk.v*f.depthM))
	}

	yCaption := "Depth (m)"
	if f.defects[DefectMissingYUnits] {
		yCaption = "Depth"
	}
	c.WriteString(1, 1, yCaption)

	for _, fr := range []float64{0, 0.5, 1} {
		col := ly.plotLeft + int(math.Round(fr*float64(ly.plotW-1)))
		c.Set(col, ly.axisRow, '┬')
		label := fmt.Sprintf("%.0f", fr*f.tEnd)
		x := col - len(label)/2
		if x+len(label) > ly.plotLeft+ly.plotW {
			x = ly.plotLeft + ly.plotW - len(label)
		}
		c.WriteString(x, ly.tickRow, label)
	}
	if !f.defects[DefectMissingXLabel] {
		caption := "Time (s)"
		c.WriteString(ly.plotLeft+(ly.plotW-len(caption))/2, ly.captionRow, caption)
	}
}

func drawLegend(c *canvas.Canvas, ly layout, f figure) {
	lg := ly.legend
	c.Fill(lg.X, lg.Y, lg.W, lg.H, ' ')
	c.TintRect(lg.X, lg.Y, lg.W, lg.H, canvas.TintNone)

	c.WriteString(lg.X, lg.Y, "┌ legend "+strings.Repeat("─", lg.W-10)+"┐")
	line1 := "── response"
	line2 := fmt.Sprintf("┄┄ setpoint %.0fm", f.depthM)
	if f.defects[DefectLegendSwapped] {
		line1 = fmt.Sprintf("── setpoint %.0fm", f.depthM)
		line2 = "┄┄ response"
	}
	for i, text := range []string{line1, line2} {
		row := lg.Y + 1 + i
		c.Set(lg.X, row, '│')
		c.WriteString(lg.X+2, row, text)
		c.Set(lg.X+lg.W-1, row, '│')
	}
	c.WriteString(lg.X, lg.Y+lg.H-1, "└"+strings.Repeat("─", lg.W-2)+"┘")
}

func drawTitle(c *canvas.Canvas, width int, f figure) {
	title := "Depth Step Response"
	if f.defects[DefectWrongTitle] {
		title = "Altitude Hold Response"
	}
	x := (width - len([]rune(title))) / 2
	if x < 0 {
		x = 0
	}
	c.WriteString(x, 0, title)
}
