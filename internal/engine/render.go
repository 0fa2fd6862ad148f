package engine

import (
	"plotdojo/internal/canvas"
	"plotdojo/internal/review"
)

// redraw rebuilds the full frame: base content first, then the overlay pass
// for the current mode. Every mutation funnels through here, so overlays can
// never accumulate on a stale base.
func (e *Engine) redraw() {
	if !e.started {
		return
	}
	c := e.canvas
	c.Reset()
	e.provider.RenderContent(c, e.width, e.height, e.challenges[e.index])
	switch e.mode {
	case ModeTutorial:
		e.overlayTutorial(c)
	case ModeActive:
		e.overlayHover(c)
		e.overlayMarkers(c)
	case ModeReview:
		e.overlayReview(c)
	}
}

// overlayTutorial spotlights the current step's zone: everything outside it
// dims and the zone itself gets an outline. Steps that point at a side panel,
// or at no zone at all, dim the whole figure uniformly instead.
func (e *Engine) overlayTutorial(c *canvas.Canvas) {
	if e.walker == nil {
		return
	}
	step, _ := e.walker.Current()
	if step.ZoneID != "" && !step.PanelTarget {
		if z, ok := e.zoneIdx.ByID(step.ZoneID); ok {
			c.TintOutside(z.Rect.X, z.Rect.Y, z.Rect.W, z.Rect.H, canvas.TintDim)
			c.TintOutline(z.Rect.X, z.Rect.Y, z.Rect.W, z.Rect.H, canvas.TintSpotlight)
			return
		}
	}
	c.TintAll(canvas.TintDim)
}

func (e *Engine) overlayHover(c *canvas.Canvas) {
	if e.hoverZoneID == "" || e.picker != nil {
		return
	}
	if z, ok := e.zoneIdx.ByID(e.hoverZoneID); ok {
		c.TintRect(z.Rect.X, z.Rect.Y, z.Rect.W, z.Rect.H, canvas.TintHover)
	}
}

func (e *Engine) overlayMarkers(c *canvas.Canvas) {
	for i, f := range e.ledger.All() {
		c.Set(f.X, f.Y, markerGlyph(i))
		c.SetTint(f.X, f.Y, canvas.TintMarker)
	}
}

// overlayReview marks each classified finding at its click location and
// outlines the zones for missed answer entries. A missed entry whose zone
// id is absent from the current index is skipped.
func (e *Engine) overlayReview(c *canvas.Canvas) {
	if e.report == nil {
		return
	}
	for _, cf := range e.report.Findings {
		glyph := '✓'
		tint := canvas.TintCorrect
		if cf.Verdict != review.VerdictCorrect {
			glyph = '✗'
			tint = canvas.TintWrong
		}
		c.Set(cf.Finding.X, cf.Finding.Y, glyph)
		c.SetTint(cf.Finding.X, cf.Finding.Y, tint)
	}
	for _, m := range e.report.Missed {
		z, ok := e.zoneIdx.ByID(m.ZoneID)
		if !ok {
			continue
		}
		c.TintOutline(z.Rect.X, z.Rect.Y, z.Rect.W, z.Rect.H, canvas.TintMissed)
	}
}

// markerGlyph numbers markers by creation order, cycling after 9.
func markerGlyph(i int) rune {
	return rune('0' + (i+1)%10)
}
