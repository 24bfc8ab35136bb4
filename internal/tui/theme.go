package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Colors are adaptive so the board stays readable on light and dark
// terminals.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

type palette struct {
	muted         lipgloss.TerminalColor
	accent        lipgloss.TerminalColor
	accentFg      lipgloss.TerminalColor
	listBorder    lipgloss.TerminalColor
	cardBorder    lipgloss.TerminalColor
	target        lipgloss.TerminalColor
	source        lipgloss.TerminalColor
	headerBg      lipgloss.TerminalColor
	headerFg      lipgloss.TerminalColor
	statusError   lipgloss.TerminalColor
	placeholderFg lipgloss.TerminalColor
}

var defaultPalette = palette{
	muted:         ac("240", "243"),
	accent:        ac("27", "62"),
	accentFg:      ac("255", "235"),
	listBorder:    ac("250", "240"),
	cardBorder:    ac("250", "243"),
	target:        ac("27", "75"),
	source:        ac("244", "240"),
	headerBg:      ac("252", "235"),
	headerFg:      ac("235", "252"),
	statusError:   ac("160", "203"),
	placeholderFg: ac("245", "241"),
}

var contrastPalette = palette{
	muted:         ac("235", "252"),
	accent:        ac("21", "51"),
	accentFg:      ac("255", "16"),
	listBorder:    ac("232", "255"),
	cardBorder:    ac("236", "250"),
	target:        ac("160", "226"),
	source:        ac("240", "245"),
	headerBg:      ac("232", "255"),
	headerFg:      ac("255", "232"),
	statusError:   ac("160", "196"),
	placeholderFg: ac("238", "250"),
}

var colors = defaultPalette

// applyAppearance selects the palette for profile ("default" or "contrast").
func applyAppearance(profile string) {
	switch strings.ToLower(strings.TrimSpace(profile)) {
	case "contrast":
		colors = contrastPalette
	default:
		colors = defaultPalette
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can disable colors in a TUI
// started from scripts. Only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector found.
	term := strings.ToLower(os.Getenv("TERM"))
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for adaptive colors.
//
// Priority: DROPBOARD_TUI_THEME=light|dark|auto, then the COLORFGBG heuristic.
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DROPBOARD_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	// COLORFGBG is "fg;bg"; the last segment is the background.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colors.muted)
	if lipgloss.HasDarkBackground() {
		// Faint text is illegible on light terminals.
		st = st.Faint(true)
	}
	return st
}

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Background(colors.headerBg).Foreground(colors.headerFg)
}

// styleSlot draws the ring around a list. It is invisible unless the slot is
// the current list drop target.
func styleSlot(target bool) lipgloss.Style {
	if target {
		return lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(colors.target)
	}
	return lipgloss.NewStyle().Border(lipgloss.HiddenBorder())
}

func styleList(highlight bool) lipgloss.Style {
	st := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colors.listBorder)
	if highlight {
		st = st.Border(lipgloss.DoubleBorder()).BorderForeground(colors.target)
	}
	return st
}

func styleListTitle(highlight bool) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	if highlight {
		st = st.Foreground(colors.target)
	}
	return st
}

func styleCard(highlight, editing bool) lipgloss.Style {
	st := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colors.cardBorder)
	switch {
	case editing:
		st = st.BorderForeground(colors.accent)
	case highlight:
		st = st.Border(lipgloss.ThickBorder()).BorderForeground(colors.target).Bold(true)
	}
	return st
}

func styleGhost() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.accent).
		Background(colors.accent).
		Foreground(colors.accentFg)
}
