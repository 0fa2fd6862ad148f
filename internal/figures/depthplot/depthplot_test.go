package depthplot

import (
	"strings"
	"testing"

	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/zones"
)

func render(defects []string) *canvas.Canvas {
	c := canvas.New(80, 24)
	ch := content.Challenge{Figure: content.FigureSpec{Kind: Kind, Defects: defects}}
	New().RenderContent(c, 80, 24, ch)
	return c
}

func frame(c *canvas.Canvas) string {
	var b strings.Builder
	for y := 0; y < c.Height(); y++ {
		b.WriteString(string(c.Row(y)))
		b.WriteByte('\n')
	}
	return b.String()
}

func topCurveRow(c *canvas.Canvas) int {
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.Rune(x, y) == '•' {
				return y
			}
		}
	}
	return -1
}

func TestRenderIsDeterministic(t *testing.T) {
	a := frame(render(nil))
	b := frame(render(nil))
	if a != b {
		t.Fatalf("two renders of the same figure differ")
	}
}

func TestCleanFigureHasAllFurniture(t *testing.T) {
	out := frame(render(nil))
	for _, want := range []string{
		"Depth Step Response",
		"Depth (m)",
		"Time (s)",
		"── response",
		"┄┄ setpoint 100m",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in clean render", want)
		}
	}
}

func TestWrongTitleDefect(t *testing.T) {
	out := frame(render([]string{DefectWrongTitle}))
	if !strings.Contains(out, "Altitude Hold Response") {
		t.Fatalf("expected wrong title text")
	}
	if strings.Contains(out, "Depth Step Response") {
		t.Fatalf("expected correct title to be absent")
	}
}

func TestMissingXLabelDefect(t *testing.T) {
	out := frame(render([]string{DefectMissingXLabel}))
	if strings.Contains(out, "Time (s)") {
		t.Fatalf("expected x caption to be absent")
	}
}

func TestMissingYUnitsDefect(t *testing.T) {
	out := frame(render([]string{DefectMissingYUnits}))
	if strings.Contains(out, "Depth (m)") {
		t.Fatalf("expected unitless y caption")
	}
	if !strings.Contains(out, "Depth") {
		t.Fatalf("expected bare y caption to remain")
	}
}

func TestTruncatedBaselineShiftsScale(t *testing.T) {
	clean := parseFigure(content.FigureSpec{})
	ly := computeLayout(80, 24, clean)
	bottom := ly.plotTop + ly.plotH - 1

	got := strings.TrimSpace(string(render(nil).Row(bottom)[:6]))
	if got != "0" {
		t.Fatalf("expected clean baseline tick 0, got %q", got)
	}
	got = strings.TrimSpace(string(render([]string{DefectTruncatedBase}).Row(bottom)[:6]))
	if got != "40" {
		t.Fatalf("expected truncated baseline tick 40, got %q", got)
	}
}

func TestClippedPeakFlattensOvershoot(t *testing.T) {
	cleanTop := topCurveRow(render(nil))
	clippedTop := topCurveRow(render([]string{DefectClippedPeak}))
	if cleanTop < 0 || clippedTop < 0 {
		t.Fatalf("curve missing: clean %d, clipped %d", cleanTop, clippedTop)
	}
	if clippedTop <= cleanTop {
		t.Fatalf("expected clipped peak below clean peak, got rows clean=%d clipped=%d", cleanTop, clippedTop)
	}
}

func TestLegendSwappedDefect(t *testing.T) {
	out := frame(render([]string{DefectLegendSwapped}))
	if !strings.Contains(out, "── setpoint 100m") || !strings.Contains(out, "┄┄ response") {
		t.Fatalf("expected swapped legend labels")
	}
}

func TestSetpointOffsetMovesLine(t *testing.T) {
	cleanRow := computeLayout(80, 24, parseFigure(content.FigureSpec{})).spRow
	offsetRow := computeLayout(80, 24, parseFigure(content.FigureSpec{Defects: []string{DefectSetpointOffset}})).spRow
	if offsetRow <= cleanRow {
		t.Fatalf("expected offset setpoint drawn lower, got clean=%d offset=%d", cleanRow, offsetRow)
	}
	out := frame(render([]string{DefectSetpointOffset}))
	if !strings.Contains(out, "    88") {
		t.Fatalf("expected the tick label to expose the 88m line")
	}
	// The legend still states the nominal setpoint.
	if !strings.Contains(out, "setpoint 100m") {
		t.Fatalf("expected nominal setpoint in legend")
	}
}

func TestGridClutterDefect(t *testing.T) {
	count := func(c *canvas.Canvas) int {
		n := 0
		for y := 0; y < c.Height(); y++ {
			for x := 0; x < c.Width(); x++ {
				if c.Rune(x, y) == '·' {
					n++
				}
			}
		}
		return n
	}
	clean := count(render(nil))
	cluttered := count(render([]string{DefectGridClutter}))
	if cluttered <= clean*4 {
		t.Fatalf("expected far denser gridlines, got clean=%d cluttered=%d", clean, cluttered)
	}
}

func TestZonesNestInsidePlot(t *testing.T) {
	ch := content.Challenge{Figure: content.FigureSpec{Kind: Kind}}
	ix := zones.NewIndex(New().ComputeZones(80, 24, ch))

	z, ok := ix.HitTest(62, 4)
	if !ok || z.ID != ZoneLegend {
		t.Fatalf("expected legend at (62,4), got %+v", z)
	}
	z, ok = ix.HitTest(10, 7)
	if !ok || z.ID != ZoneSetpoint {
		t.Fatalf("expected setpoint band at (10,7), got %+v", z)
	}
	z, ok = ix.HitTest(10, 12)
	if !ok || z.ID != ZonePlot {
		t.Fatalf("expected plot at (10,12), got %+v", z)
	}
	z, ok = ix.HitTest(40, 0)
	if !ok || z.ID != ZoneTitle {
		t.Fatalf("expected title at (40,0), got %+v", z)
	}
	z, ok = ix.HitTest(3, 10)
	if !ok || z.ID != ZoneYAxis {
		t.Fatalf("expected y axis at (3,10), got %+v", z)
	}
	z, ok = ix.HitTest(40, 22)
	if !ok || z.ID != ZoneXAxis {
		t.Fatalf("expected x axis at (40,22), got %+v", z)
	}
}

func TestZoneRubricBindings(t *testing.T) {
	ch := content.Challenge{Figure: content.FigureSpec{Kind: Kind}}
	byID := map[string]zones.Zone{}
	for _, z := range New().ComputeZones(80, 24, ch) {
		byID[z.ID] = z
	}
	if !byID[ZoneXAxis].Claimable(DefectMissingXLabel) {
		t.Fatalf("expected x axis to accept missing-x-label")
	}
	if !byID[ZoneYAxis].Claimable(DefectMissingYUnits) || !byID[ZoneYAxis].Claimable(DefectTruncatedBase) {
		t.Fatalf("expected y axis bindings")
	}
	if !byID[ZoneTitle].Claimable(DefectWrongTitle) {
		t.Fatalf("expected title binding")
	}
	if !byID[ZoneLegend].Claimable(DefectLegendSwapped) {
		t.Fatalf("expected legend binding")
	}
	if byID[ZonePlot].Claimable(DefectWrongTitle) {
		t.Fatalf("expected plot to refuse title defect")
	}
}

func TestTooSmallViewport(t *testing.T) {
	c := canvas.New(20, 8)
	ch := content.Challenge{Figure: content.FigureSpec{Kind: Kind}}
	New().RenderContent(c, 20, 8, ch)
	if !strings.Contains(frame(c), "viewport too small") {
		t.Fatalf("expected too-small notice")
	}
	if z := New().ComputeZones(20, 8, ch); z != nil {
		t.Fatalf("expected no zones for tiny viewport, got %d", len(z))
	}
}
