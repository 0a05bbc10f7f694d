// Package ui provides the terminal front end for deskcalc: palettes,
// keypad rendering and the bubbletea model that drives the engine.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Slate palette shared by both themes.
var (
	Slate100 = lipgloss.Color("#f1f5f9")
	Slate200 = lipgloss.Color("#e2e8f0")
	Slate300 = lipgloss.Color("#cbd5e1")
	Slate400 = lipgloss.Color("#94a3b8")
	Slate500 = lipgloss.Color("#64748b")
	Slate600 = lipgloss.Color("#475569")
	Slate700 = lipgloss.Color("#334155")
	Slate800 = lipgloss.Color("#1e293b")
	Slate900 = lipgloss.Color("#0f172a")
	Gray900  = lipgloss.Color("#111827")
	White    = lipgloss.Color("#ffffff")

	// Semantic key colors
	Operator      = lipgloss.Color("#f97316")
	OperatorDark  = lipgloss.Color("#ea580c")
	Equals        = lipgloss.Color("#22c55e")
	EqualsDark    = lipgloss.Color("#16a34a")
	Destructive   = lipgloss.Color("#ef4444")
	DestructiveDk = lipgloss.Color("#dc2626")
	Info          = lipgloss.Color("#2563eb")
	InfoDark      = lipgloss.Color("#60a5fa")
)

// Theme holds the colors of one palette.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Display    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Key        lipgloss.Color
	KeyText    lipgloss.Color
	Special    lipgloss.Color
	Operator   lipgloss.Color
	Equals     lipgloss.Color
	Clear      lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Background: Slate100,
		Foreground: Slate800,
		Display:    White,
		Muted:      Slate500,
		Border:     Slate300,
		Key:        White,
		KeyText:    Slate800,
		Special:    Slate200,
		Operator:   Operator,
		Equals:     Equals,
		Clear:      Destructive,
		Accent:     Info,
		IsDark:     false,
	}
}

// DarkTheme returns the dark palette.
func DarkTheme() Theme {
	return Theme{
		Background: Slate900,
		Foreground: White,
		Display:    Gray900,
		Muted:      Slate400,
		Border:     Slate700,
		Key:        Slate700,
		KeyText:    White,
		Special:    Slate600,
		Operator:   OperatorDark,
		Equals:     EqualsDark,
		Clear:      DestructiveDk,
		Accent:     InfoDark,
		IsDark:     true,
	}
}

// ThemeFor maps the dark-mode flag to its palette.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled components of the calculator.
type Styles struct {
	Theme Theme

	// Layout
	App   lipgloss.Style
	Panel lipgloss.Style

	// Display
	Display    lipgloss.Style
	Expression lipgloss.Style
	Indicator  lipgloss.Style

	// Keys
	Digit       lipgloss.Style
	SpecialKey  lipgloss.Style
	OperatorKey lipgloss.Style
	EqualsKey   lipgloss.Style
	ClearKey    lipgloss.Style
	MemoryKey   lipgloss.Style
	Active      lipgloss.Style

	// History
	HistoryTitle    lipgloss.Style
	HistoryItem     lipgloss.Style
	HistorySelected lipgloss.Style

	// Status
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func keyStyle(bg, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(keyWidth).
		MarginRight(keyGap).
		Align(lipgloss.Center).
		Background(bg).
		Foreground(fg).
		Bold(true)
}

// NewStyles creates a Styles instance for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Padding(appPaddingV, appPaddingH).
			Background(theme.Background).
			Foreground(theme.Foreground),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Display: lipgloss.NewStyle().
			Width(keypadWidth).
			Align(lipgloss.Right).
			Background(theme.Display).
			Foreground(theme.Foreground).
			Bold(true).
			Padding(0, 1),

		Expression: lipgloss.NewStyle().
			Width(keypadWidth).
			Align(lipgloss.Right).
			Background(theme.Display).
			Foreground(theme.Muted).
			Padding(0, 1),

		Indicator: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Digit:       keyStyle(theme.Key, theme.KeyText),
		SpecialKey:  keyStyle(theme.Special, theme.KeyText),
		OperatorKey: keyStyle(theme.Operator, White),
		EqualsKey:   keyStyle(theme.Equals, White),
		ClearKey:    keyStyle(theme.Clear, White),
		MemoryKey:   keyStyle(theme.Special, theme.Accent),
		Active: lipgloss.NewStyle().
			Reverse(true),

		HistoryTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		HistoryItem: lipgloss.NewStyle().
			Foreground(theme.Muted),

		HistorySelected: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Equals).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Clear).
			Bold(true),
	}
}
