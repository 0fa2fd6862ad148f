package main

import (
	"plotdojo/internal/ui"
)

// Scratch harness: runs the view with canned catalog data so layout
// changes can be eyeballed without an engine behind them. No controller
// is attached, so every key except quit is inert.
func main() {
	v := ui.New(ui.Options{StyleVariant: "studio", MotionLevel: "off", MouseScope: "full"})
	v.SetCatalog(ui.CatalogState{Packs: []ui.PackCard{
		{
			PackID:  "scratch",
			Title:   "Layout scratchpad",
			Version: "0.0.0",
			Tags:    []string{"fake"},
			Challenges: []ui.ChallengeCard{
				{ChallengeID: "one", Title: "A tutorial card", Type: "tutorial", Difficulty: "easy", BestPercent: -1},
				{ChallengeID: "two", Title: "A finished critique", Type: "critique", Difficulty: "medium", Completed: true, BestPercent: 80},
				{ChallengeID: "three", Title: "An untouched critique", Type: "critique", Difficulty: "hard", BestPercent: -1},
			},
		},
	}})
	v.SetScreen(ui.ScreenCatalog)
	_ = v.Run()
}
