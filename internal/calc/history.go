package calc

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedEntry is returned when a history entry has no parsable result.
var ErrMalformedEntry = errors.New("malformed history entry")

// History is the log of resolved calculations, most recent first. It also
// tracks whether the history panel is open.
type History struct {
	entries []string
	visible bool
}

// NewHistory returns an empty, closed history log.
func NewHistory() *History {
	return &History{}
}

// FormatLabel builds the "a op b =" label shown above a result.
func FormatLabel(a float64, op Operator, b float64) string {
	return fmt.Sprintf("%s %s %s =", Number(a), op, Number(b))
}

// FormatEntry builds the canonical "a op b = result" entry text.
func FormatEntry(a float64, op Operator, b float64, result float64) string {
	return FormatLabel(a, op, b) + " " + Number(result)
}

// Append records entry as the most recent calculation.
func (h *History) Append(entry string) {
	h.entries = append([]string{entry}, h.entries...)
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Entries returns a copy of the log, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Toggle opens or closes the panel and returns the new visibility.
func (h *History) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Hide closes the panel.
func (h *History) Hide() {
	h.visible = false
}

// Visible reports whether the panel is open.
func (h *History) Visible() bool {
	return h.visible
}

// SelectResult extracts the numeric result from an entry produced by
// FormatEntry. An entry whose result is the error marker yields NaN.
func (h *History) SelectResult(entry string) (float64, error) {
	_, after, found := strings.Cut(entry, "=")
	if !found {
		return 0, fmt.Errorf("%q: %w", entry, ErrMalformedEntry)
	}

	// Only the segment up to a further "=" is considered.
	result, _, _ := strings.Cut(after, "=")
	result = strings.TrimSpace(result)
	if result == ErrorMarker {
		return math.NaN(), nil
	}

	v := Parse(result)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%q: %w", entry, ErrMalformedEntry)
	}
	return v, nil
}
