package engine

import (
	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/zones"
)

// ContentProvider supplies the figure: how to draw it and where its
// clickable regions sit for the current dimensions. The engine treats both
// as opaque; zone semantics belong entirely to the provider.
type ContentProvider interface {
	RenderContent(c *canvas.Canvas, width, height int, ch content.Challenge)
	ComputeZones(width, height int, ch content.Challenge) []zones.Zone
}

// Hooks are optional lifecycle callbacks. Nil fields are skipped.
type Hooks struct {
	ChallengeLoaded func(index int, ch content.Challenge)
	TutorialStep    func(step int, s content.TutorialStep)
}
