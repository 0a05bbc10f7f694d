package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(Options{ActiveKeyDelay: 20 * time.Millisecond, CopyConfirmDelay: 20 * time.Millisecond})
	t.Cleanup(m.Close)
	return m
}

// send feeds messages through Update and returns the resulting model.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestPhysicalKey(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{tea.KeyMsg{Type: tea.KeyBackspace}, "Backspace"},
		{runes("7"), "7"},
		{runes("*"), "*"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, ""},
		{tea.KeyMsg{Type: tea.KeyTab}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, physicalKey(tt.msg), tt.msg.String())
	}
}

func TestModel_KeyboardDrivesEngine(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("1"), runes("2"), runes("*"), runes("3"), tea.KeyMsg{Type: tea.KeyEnter})

	snap := m.Snapshot()
	assert.Equal(t, "36", snap.Display)
	assert.Equal(t, []string{"12 × 3 = 36"}, snap.History)
	assert.Contains(t, m.View(), "36")
}

func TestModel_TerminalOnlyBindings(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("4"), runes("n"))
	assert.Equal(t, "-4", m.Snapshot().Display)

	m = send(t, m, runes("n"), runes("i"))
	assert.Equal(t, "0.25", m.Snapshot().Display)

	m = send(t, m, runes("m"))
	assert.True(t, m.Snapshot().MemorySet)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, runes("v"))
	assert.Equal(t, "0.25", m.Snapshot().Display)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m"), Alt: true})
	assert.False(t, m.Snapshot().MemorySet)
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		runes("2"), runes("+"), runes("3"), runes("="),
		runes("4"), runes("*"), runes("5"), runes("="),
		runes("h"),
	)
	require.True(t, m.Snapshot().HistoryVisible)
	assert.Contains(t, m.View(), "History")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	snap := m.Snapshot()
	assert.Equal(t, "5", snap.Display)
	assert.False(t, snap.HistoryVisible)

	m = send(t, m, runes("h"), runes("X"))
	assert.Empty(t, m.Snapshot().History)
	assert.False(t, m.Snapshot().HistoryVisible)
}

func TestModel_HistoryKeysInactiveWhenClosed(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("2"), runes("+"), runes("2"), runes("="), runes("X"))
	assert.Len(t, m.Snapshot().History, 1)
}

func TestModel_CopyDisplay(t *testing.T) {
	oldClipboard := clipboardWriteAll
	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = oldClipboard }()

	m := newTestModel(t)
	m = send(t, m, runes("4"), runes("2"), runes("y"))
	assert.Equal(t, "42", copied)
	assert.Contains(t, m.View(), "Copied")

	assert.Eventually(t, func() bool {
		return !strings.Contains(m.View(), "Copied")
	}, time.Second, 5*time.Millisecond)
}

func TestModel_CopyFailure(t *testing.T) {
	oldClipboard := clipboardWriteAll
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	defer func() { clipboardWriteAll = oldClipboard }()

	m := send(t, newTestModel(t), runes("y"))
	view := m.View()
	assert.Contains(t, view, "copy failed")
	assert.NotContains(t, view, "Copied")
}

func TestModel_ThemeToggle(t *testing.T) {
	m := newTestModel(t)
	assert.False(t, m.Dark())

	m = send(t, m, runes("t"))
	assert.True(t, m.Dark())

	m = send(t, m, ThemeMsg{Dark: false})
	assert.False(t, m.Dark())
}

func TestModel_ActiveKeyTriggersRefresh(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("5"))
	assert.Equal(t, "num-5", m.mapper.ActiveKey())

	msg := waitForRefresh(m.refresh, m.done)()
	assert.IsType(t, refreshMsg{}, msg)
	assert.Empty(t, m.mapper.ActiveKey())
}

func TestModel_MouseClickPressesKey(t *testing.T) {
	m := newTestModel(t)
	top := appPaddingV + lipgloss.Height(m.renderScreen()) + 1

	// Row 2, column 0 is "7".
	click := tea.MouseMsg{
		X:      appPaddingH + 1,
		Y:      top + 2*rowStride,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	m = send(t, m, click)
	assert.Equal(t, "7", m.Snapshot().Display)

	// The spacer line between rows hits nothing.
	click.Y++
	m = send(t, m, click)
	assert.Equal(t, "7", m.Snapshot().Display)
}

func TestModel_QuitStopsTimers(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("1"))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.mapper.ActiveKey())

	_, open := <-m.done
	assert.False(t, open)
}

func TestButtonAt(t *testing.T) {
	b, ok := buttonAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, "mc", b.Command)

	b, ok = buttonAt(4*keyStride, 5*rowStride)
	require.True(t, ok)
	assert.Equal(t, "equals", b.Command)

	_, ok = buttonAt(keyWidth, 0)
	assert.False(t, ok, "gap between keys")

	_, ok = buttonAt(0, len(keypad)*rowStride)
	assert.False(t, ok, "below the keypad")
}
