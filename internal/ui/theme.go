package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Pyro18/codepaw/internal/pet"
)

// CodePaw theme (CLI + TUI).
// Kept intentionally small: reusable styles, icons, and the pet face table.

const (
	IconPaw     = "🐾"
	IconSparkle = "✨"
	IconTrophy  = "🏆"
	IconFire    = "🔥"
	IconBolt    = "⚡"
	IconHeart   = "💖"
	IconCloud   = "☁️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconParty   = "🎉"
	IconStar    = "🌟"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PetFace maps stage and happiness to the pet's face.
func PetFace(stage pet.Stage, happiness int) string {
	type faces struct{ happy, meh, sad string }
	table := map[pet.Stage]faces{
		pet.StageBaby:   {"🐣", "😴", "😵"},
		pet.StageTeen:   {"🐱", "😾", "🙀"},
		pet.StageAdult:  {"🦄", "🐴", "🐎"},
		pet.StageMaster: {"🐉", "🦎", "🐲"},
		pet.StageLegend: {"⭐", "🌟", "💫"},
	}
	f, ok := table[stage]
	if !ok {
		return "🐣"
	}
	switch {
	case happiness > 60:
		return f.happy
	case happiness > 30:
		return f.meh
	default:
		return f.sad
	}
}

// Mood renders a short mood word from happiness and energy.
func Mood(happiness, energy int) string {
	switch {
	case happiness > 70 && energy > 70:
		return Good.Render("thriving")
	case happiness > 40 && energy > 40:
		return Warn.Render("content")
	default:
		return Bad.Render("neglected")
	}
}

// Bar renders a fixed-width progress bar like "███░░░░░░░".
func Bar(value, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// StageText renders the stage title with its tier color.
func StageText(s pet.Stage) string {
	name := s.DisplayName()
	switch s {
	case pet.StageLegend:
		return Gold.Render(name)
	case pet.StageMaster:
		return Title.Render(name)
	case pet.StageAdult:
		return H2.Render(name)
	case pet.StageTeen:
		return Good.Render(name)
	default:
		return Muted.Render(name)
	}
}
