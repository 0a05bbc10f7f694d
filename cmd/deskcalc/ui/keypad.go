package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants for the keypad grid.
const (
	keyWidth    = 7
	keyGap      = 1
	keyColumns  = 5
	keyStride   = keyWidth + keyGap
	rowStride   = 2 // key line plus spacer line
	keypadWidth = keyColumns*keyStride - keyGap

	appPaddingV = 1
	appPaddingH = 2
)

type keyKind int

const (
	kindDigit keyKind = iota
	kindSpecial
	kindOperator
	kindEquals
	kindClear
	kindMemory
)

// button is one keypad cell. Command is an engine command id.
type button struct {
	Label   string
	Command string
	Kind    keyKind
}

// keypad is laid out row-major. Equals spans the last two rows.
var keypad = [][]button{
	{
		{"MC", "mc", kindMemory},
		{"MR", "mr", kindMemory},
		{"M+", "m+", kindMemory},
		{"M-", "m-", kindMemory},
		{"Hist", "history", kindSpecial},
	},
	{
		{"AC", "clear", kindClear},
		{"⌫", "backspace", kindSpecial},
		{"%", "percent", kindSpecial},
		{"√", "sqrt", kindSpecial},
		{"x²", "square", kindSpecial},
	},
	{
		{"7", "num-7", kindDigit},
		{"8", "num-8", kindDigit},
		{"9", "num-9", kindDigit},
		{"÷", "divide", kindOperator},
		{"×", "multiply", kindOperator},
	},
	{
		{"4", "num-4", kindDigit},
		{"5", "num-5", kindDigit},
		{"6", "num-6", kindDigit},
		{"-", "subtract", kindOperator},
		{"+", "add", kindOperator},
	},
	{
		{"1", "num-1", kindDigit},
		{"2", "num-2", kindDigit},
		{"3", "num-3", kindDigit},
		{"1/x", "fraction", kindSpecial},
		{"=", "equals", kindEquals},
	},
	{
		{"0", "num-0", kindDigit},
		{".", "decimal", kindDigit},
		{"±", "sign", kindSpecial},
		{"π", "pi", kindSpecial},
		{"=", "equals", kindEquals},
	},
}

// buttonAt returns the key under the cell (x, y), measured from the
// keypad's top-left corner. Gaps between keys hit nothing.
func buttonAt(x, y int) (button, bool) {
	if x < 0 || y < 0 || x%keyStride >= keyWidth || y%rowStride != 0 {
		return button{}, false
	}
	row, col := y/rowStride, x/keyStride
	if row >= len(keypad) || col >= len(keypad[row]) {
		return button{}, false
	}
	return keypad[row][col], true
}

func (s Styles) forKind(k keyKind) lipgloss.Style {
	switch k {
	case kindOperator:
		return s.OperatorKey
	case kindEquals:
		return s.EqualsKey
	case kindClear:
		return s.ClearKey
	case kindMemory:
		return s.MemoryKey
	case kindSpecial:
		return s.SpecialKey
	default:
		return s.Digit
	}
}

// renderKeypad draws the grid, highlighting keys bound to active.
func renderKeypad(s Styles, active string) string {
	rows := make([]string, 0, len(keypad))
	for _, row := range keypad {
		cells := make([]string, 0, len(row))
		for i, b := range row {
			st := s.forKind(b.Kind)
			if b.Command == active {
				st = st.Inherit(s.Active)
			}
			if i == len(row)-1 {
				st = st.MarginRight(0)
			}
			cells = append(cells, st.Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, strings.Repeat("\n", rowStride))
}
