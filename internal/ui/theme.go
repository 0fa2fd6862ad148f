package ui

import (
	lipgloss "github.com/charmbracelet/lipgloss"

	"plotdojo/internal/canvas"
)

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Muted        lipgloss.Style
	Info         lipgloss.Style

	Correct     lipgloss.Style
	Wrong       lipgloss.Style
	Missed      lipgloss.Style
	MissedFaint lipgloss.Style

	Figure          lipgloss.Style
	FigureAccent    lipgloss.Style
	FigureReference lipgloss.Style
	FigureDim       lipgloss.Style
	FigureHover     lipgloss.Style
	FigureMarker    lipgloss.Style
	FigureSpotlight lipgloss.Style

	PickerBorder   lipgloss.Style
	PickerItem     lipgloss.Style
	PickerUsed     lipgloss.Style
	PickerSelected lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("studio")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "chalkboard":
		return chalkboardTheme()
	case "mono":
		return monoTheme()
	default:
		return studioTheme()
	}
}

// TintStyle maps a figure tint to its style. Missed outlines alternate
// between Missed and MissedFaint as pulse flips.
func (t Theme) TintStyle(tint canvas.Tint, pulse bool) lipgloss.Style {
	switch tint {
	case canvas.TintAccent:
		return t.FigureAccent
	case canvas.TintReference:
		return t.FigureReference
	case canvas.TintDim:
		return t.FigureDim
	case canvas.TintHover:
		return t.FigureHover
	case canvas.TintMarker:
		return t.FigureMarker
	case canvas.TintCorrect:
		return t.Correct
	case canvas.TintWrong:
		return t.Wrong
	case canvas.TintMissed:
		if pulse {
			return t.MissedFaint
		}
		return t.Missed
	case canvas.TintSpotlight:
		return t.FigureSpotlight
	default:
		return t.Figure
	}
}

func studioTheme() Theme {
	ink := lipgloss.Color("#10141F")
	slate := lipgloss.Color("#1C2638")
	powder := lipgloss.Color("#E8EFFA")
	cyan := lipgloss.Color("#5FD7EB")
	mint := lipgloss.Color("#7BE6A4")
	coral := lipgloss.Color("#FF7A8A")
	gold := lipgloss.Color("#F2CE72")
	violet := lipgloss.Color("#B7A6F5")
	border := lipgloss.Color("#44577F")
	dim := lipgloss.Color("#5C6B87")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(powder).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(slate).
			Foreground(powder).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(border),
		PanelBody: lipgloss.NewStyle().
			Foreground(powder),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Background(ink).
			Foreground(powder).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(dim),
		Info: lipgloss.NewStyle().
			Foreground(violet),
		Correct: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		Wrong: lipgloss.NewStyle().
			Foreground(coral).
			Bold(true),
		Missed: lipgloss.NewStyle().
			Foreground(gold).
			Bold(true),
		MissedFaint: lipgloss.NewStyle().
			Foreground(gold),
		Figure: lipgloss.NewStyle().
			Foreground(powder),
		FigureAccent: lipgloss.NewStyle().
			Foreground(cyan),
		FigureReference: lipgloss.NewStyle().
			Foreground(violet),
		FigureDim: lipgloss.NewStyle().
			Foreground(dim),
		FigureHover: lipgloss.NewStyle().
			Background(slate).
			Foreground(cyan),
		FigureMarker: lipgloss.NewStyle().
			Foreground(gold).
			Bold(true),
		FigureSpotlight: lipgloss.NewStyle().
			Foreground(gold).
			Bold(true),
		PickerBorder: lipgloss.NewStyle().
			Foreground(cyan),
		PickerItem: lipgloss.NewStyle().
			Foreground(powder),
		PickerUsed: lipgloss.NewStyle().
			Foreground(dim),
		PickerSelected: lipgloss.NewStyle().
			Background(slate).
			Foreground(cyan).
			Bold(true),
	}
}

func chalkboardTheme() Theme {
	board := lipgloss.Color("#1B2B24")
	frame := lipgloss.Color("#2C4036")
	chalk := lipgloss.Color("#F1F0E4")
	sage := lipgloss.Color("#8FD6AC")
	rose := lipgloss.Color("#E08A96")
	butter := lipgloss.Color("#EAD58A")
	sky := lipgloss.Color("#8FC2E8")
	faded := lipgloss.Color("#7C9486")

	return Theme{
		Header:       lipgloss.NewStyle().Background(board).Foreground(chalk).Padding(0, 1),
		Status:       lipgloss.NewStyle().Background(frame).Foreground(chalk).Padding(0, 1),
		PanelTitle:   lipgloss.NewStyle().Foreground(butter).Bold(true),
		PanelBorder:  lipgloss.NewStyle().Foreground(frame),
		PanelBody:    lipgloss.NewStyle().Foreground(chalk),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(butter).
			Background(board).
			Foreground(chalk).
			Padding(1, 2),
		OverlayTitle:    lipgloss.NewStyle().Foreground(butter).Bold(true),
		Accent:          lipgloss.NewStyle().Foreground(sky).Bold(true),
		Muted:           lipgloss.NewStyle().Foreground(faded),
		Info:            lipgloss.NewStyle().Foreground(sky),
		Correct:         lipgloss.NewStyle().Foreground(sage).Bold(true),
		Wrong:           lipgloss.NewStyle().Foreground(rose).Bold(true),
		Missed:          lipgloss.NewStyle().Foreground(butter).Bold(true),
		MissedFaint:     lipgloss.NewStyle().Foreground(butter),
		Figure:          lipgloss.NewStyle().Foreground(chalk),
		FigureAccent:    lipgloss.NewStyle().Foreground(sage),
		FigureReference: lipgloss.NewStyle().Foreground(sky),
		FigureDim:       lipgloss.NewStyle().Foreground(faded),
		FigureHover:     lipgloss.NewStyle().Background(frame).Foreground(butter),
		FigureMarker:    lipgloss.NewStyle().Foreground(butter).Bold(true),
		FigureSpotlight: lipgloss.NewStyle().Foreground(butter).Bold(true),
		PickerBorder:    lipgloss.NewStyle().Foreground(butter),
		PickerItem:      lipgloss.NewStyle().Foreground(chalk),
		PickerUsed:      lipgloss.NewStyle().Foreground(faded),
		PickerSelected:  lipgloss.NewStyle().Background(frame).Foreground(butter).Bold(true),
	}
}

// monoTheme stays colorless for terminals without a palette worth using.
// Emphasis comes from bold, faint, and reverse video only.
func monoTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)
	faint := lipgloss.NewStyle().Faint(true)
	reverse := lipgloss.NewStyle().Reverse(true)

	return Theme{
		Header:          reverse.Padding(0, 1),
		Status:          reverse.Padding(0, 1),
		PanelTitle:      bold,
		PanelBorder:     faint,
		PanelBody:       plain,
		Overlay:         lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(1, 2),
		OverlayTitle:    bold,
		Accent:          bold,
		Muted:           faint,
		Info:            plain,
		Correct:         bold,
		Wrong:           reverse,
		Missed:          bold,
		MissedFaint:     faint,
		Figure:          plain,
		FigureAccent:    bold,
		FigureReference: plain,
		FigureDim:       faint,
		FigureHover:     reverse,
		FigureMarker:    bold,
		FigureSpotlight: bold,
		PickerBorder:    bold,
		PickerItem:      plain,
		PickerUsed:      faint,
		PickerSelected:  reverse,
	}
}
