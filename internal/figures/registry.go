package figures

import (
	"fmt"
	"sort"

	"plotdojo/internal/canvas"
	"plotdojo/internal/content"
	"plotdojo/internal/zones"
)

// Renderer draws one figure family. Implementations must be pure: the same
// dimensions and figure spec always yield the same cells and zones.
type Renderer interface {
	RenderContent(c *canvas.Canvas, width, height int, ch content.Challenge)
	ComputeZones(width, height int, ch content.Challenge) []zones.Zone
}

// Registry dispatches rendering on the figure kind declared by each
// challenge. It satisfies the engine's content provider interface, so the
// wiring layer hands it straight to the engine.
type Registry struct {
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: map[string]Renderer{}}
}

func (r *Registry) Register(kind string, ren Renderer) {
	r.renderers[kind] = ren
}

func (r *Registry) Has(kind string) bool {
	_, ok := r.renderers[kind]
	return ok
}

func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CheckChallenges verifies every challenge's figure kind is registered, so
// an unknown kind fails at startup instead of rendering a blank figure.
func (r *Registry) CheckChallenges(chs []content.Challenge) error {
	for _, ch := range chs {
		if !r.Has(ch.Figure.Kind) {
			return fmt.Errorf("challenge %q: no renderer for figure kind %q", ch.ChallengeID, ch.Figure.Kind)
		}
	}
	return nil
}

func (r *Registry) RenderContent(c *canvas.Canvas, width, height int, ch content.Challenge) {
	ren, ok := r.renderers[ch.Figure.Kind]
	if !ok {
		c.WriteString(2, 1, fmt.Sprintf("no renderer for figure kind %q", ch.Figure.Kind))
		return
	}
	ren.RenderContent(c, width, height, ch)
}

func (r *Registry) ComputeZones(width, height int, ch content.Challenge) []zones.Zone {
	ren, ok := r.renderers[ch.Figure.Kind]
	if !ok {
		return nil
	}
	return ren.ComputeZones(width, height, ch)
}
