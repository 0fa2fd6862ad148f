package tutorial

import "plotdojo/internal/content"

// Walker is the linear step machine behind the guided walkthrough. It is
// created fresh on every tutorial challenge load and discarded with it; the
// terminal "start critiques" action belongs to the navigation layer, the
// walker only reports that it is at the end.
type Walker struct {
	steps   []content.TutorialStep
	current int
	visited map[int]struct{}
}

func NewWalker(steps []content.TutorialStep) *Walker {
	w := &Walker{
		steps:   append([]content.TutorialStep(nil), steps...),
		visited: map[int]struct{}{},
	}
	if len(w.steps) > 0 {
		w.visited[0] = struct{}{}
	}
	return w
}

func (w *Walker) Len() int {
	return len(w.steps)
}

func (w *Walker) Current() (content.TutorialStep, int) {
	if len(w.steps) == 0 {
		return content.TutorialStep{}, 0
	}
	return w.steps[w.current], w.current
}

func (w *Walker) Step(i int) (content.TutorialStep, bool) {
	if i < 0 || i >= len(w.steps) {
		return content.TutorialStep{}, false
	}
	return w.steps[i], true
}

func (w *Walker) AtStart() bool {
	return w.current == 0
}

func (w *Walker) AtEnd() bool {
	return w.current >= len(w.steps)-1
}

// Next advances one step. At the last step it reports false and stays put;
// the caller swaps the action for the terminal advance instead.
func (w *Walker) Next() bool {
	if w.AtEnd() {
		return false
	}
	w.current++
	w.visited[w.current] = struct{}{}
	return true
}

func (w *Walker) Prev() bool {
	if w.AtStart() {
		return false
	}
	w.current--
	w.visited[w.current] = struct{}{}
	return true
}

// Jump selects a listed step directly and marks it visited.
func (w *Walker) Jump(i int) bool {
	if i < 0 || i >= len(w.steps) {
		return false
	}
	w.current = i
	w.visited[i] = struct{}{}
	return true
}

func (w *Walker) Visited(i int) bool {
	_, ok := w.visited[i]
	return ok
}
