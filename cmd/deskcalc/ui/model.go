package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"deskcalc/internal/calc"
	"deskcalc/internal/keymap"
	"deskcalc/internal/transient"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// DefaultCopyConfirmDelay is how long the copied indicator stays visible.
const DefaultCopyConfirmDelay = 2 * time.Second

const historyHeight = 6

// ThemeMsg switches the palette.
type ThemeMsg struct {
	Dark bool
}

// refreshMsg asks for a redraw after a transient indicator expired.
type refreshMsg struct{}

// Options configures a Model.
type Options struct {
	Dark             bool
	ShowHelp         bool
	ActiveKeyDelay   time.Duration
	CopyConfirmDelay time.Duration

	Logger       *zap.Logger
	EngineLogger *zap.Logger
	KeymapLogger *zap.Logger
}

// Model is the calculator screen. It forwards keyboard input through the
// keymap and pointer clicks straight to the engine.
type Model struct {
	engine *calc.Engine
	mapper *keymap.Mapper
	snap   calc.Snapshot
	copied *transient.Flash[bool]

	refresh   chan struct{}
	done      chan struct{}
	closeOnce *sync.Once

	styles   Styles
	keys     keyMap
	help     help.Model
	history  viewport.Model
	cursor   int
	showHelp bool
	status   string

	width  int
	height int
	logger *zap.Logger
}

// NewModel creates the calculator screen with a fresh engine.
func NewModel(opts Options) Model {
	if opts.ActiveKeyDelay <= 0 {
		opts.ActiveKeyDelay = keymap.DefaultActiveDelay
	}
	if opts.CopyConfirmDelay <= 0 {
		opts.CopyConfirmDelay = DefaultCopyConfirmDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	refresh := make(chan struct{}, 1)
	notify := func() {
		select {
		case refresh <- struct{}{}:
		default:
		}
	}

	engine := calc.New(calc.WithLogger(opts.EngineLogger))
	m := Model{
		engine: engine,
		mapper: keymap.New(engine,
			keymap.WithActiveDelay(opts.ActiveKeyDelay),
			keymap.WithLogger(opts.KeymapLogger),
			keymap.WithNotify(notify),
		),
		snap:      engine.Snapshot(),
		copied:    transient.NewFlash[bool](opts.CopyConfirmDelay, notify),
		refresh:   refresh,
		done:      make(chan struct{}),
		closeOnce: &sync.Once{},
		styles:    NewStyles(ThemeFor(opts.Dark)),
		keys:      defaultKeyMap(),
		help:      help.New(),
		history:   viewport.New(keypadWidth-4, historyHeight),
		showHelp:  opts.ShowHelp,
		logger:    logger,
	}
	m.syncHistory()
	return m
}

// Init starts listening for indicator expiry.
func (m Model) Init() tea.Cmd {
	return waitForRefresh(m.refresh, m.done)
}

func waitForRefresh(refresh <-chan struct{}, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-refresh:
			return refreshMsg{}
		case <-done:
			return nil
		}
	}
}

// Close stops pending indicator timers.
func (m Model) Close() {
	m.closeOnce.Do(func() {
		m.mapper.Close()
		m.copied.Cancel()
		close(m.done)
	})
}

// Snapshot returns the engine state last shown on screen.
func (m Model) Snapshot() calc.Snapshot {
	return m.snap
}

// Dark reports whether the dark palette is active.
func (m Model) Dark() bool {
	return m.styles.Theme.IsDark
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		return m, waitForRefresh(m.refresh, m.done)

	case ThemeMsg:
		m.setTheme(msg.Dark)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncHistory()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.History)-1 {
			m.cursor++
		}
		m.syncHistory()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(m.snap.History) {
			m.dispatch(calc.SelectCommand(m.snap.History[m.cursor]))
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearHistory):
		m.run("history-clear")
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyDisplay()
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(!m.Dark())
		return m, nil

	case key.Matches(msg, m.keys.Sign):
		m.run("sign")
		return m, nil

	case key.Matches(msg, m.keys.Reciprocal):
		m.run("fraction")
		return m, nil

	case key.Matches(msg, m.keys.MemAdd):
		m.run("m+")
		return m, nil

	case key.Matches(msg, m.keys.MemSub):
		m.run("m-")
		return m, nil

	case key.Matches(msg, m.keys.MemRecall):
		m.run("mr")
		return m, nil

	case key.Matches(msg, m.keys.MemClear):
		m.run("mc")
		return m, nil
	}

	k := physicalKey(msg)
	if k == "" {
		return m, nil
	}
	res, err := m.mapper.HandleKey(k)
	if err != nil {
		m.fail(err)
		m.apply(m.engine.Snapshot())
		return m, nil
	}
	if res.Handled {
		m.apply(res.Snapshot)
	}
	return m, nil
}

// handleMouse presses the keypad key under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}
	top := appPaddingV + lipgloss.Height(m.renderScreen()) + 1
	b, ok := buttonAt(msg.X-appPaddingH, msg.Y-top)
	if !ok {
		return m
	}
	m.logger.Debug("key clicked", zap.String("command", b.Command))
	m.run(b.Command)
	return m
}

// run dispatches the command with the given id.
func (m *Model) run(id string) {
	cmd, err := calc.ParseCommand(id)
	if err != nil {
		m.fail(err)
		return
	}
	m.dispatch(cmd)
}

func (m *Model) dispatch(cmd calc.Command) {
	snap, err := m.engine.Dispatch(cmd)
	m.apply(snap)
	if err != nil {
		m.fail(err)
	}
}

func (m *Model) apply(snap calc.Snapshot) {
	if snap.HistoryVisible && !m.snap.HistoryVisible {
		m.cursor = 0
	}
	m.snap = snap
	m.status = ""
	m.keys.setHistoryMode(snap.HistoryVisible)
	if m.cursor >= len(snap.History) {
		m.cursor = max(len(snap.History)-1, 0)
	}
	m.syncHistory()
}

func (m *Model) fail(err error) {
	m.logger.Warn("command failed", zap.Error(err))
	m.status = err.Error()
}

func (m *Model) copyDisplay() {
	if err := clipboardWriteAll(m.snap.Display); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.logger.Debug("display copied", zap.String("value", m.snap.Display))
	m.copied.Set(true)
}

func (m *Model) setTheme(dark bool) {
	m.styles = NewStyles(ThemeFor(dark))
	m.logger.Debug("theme changed", zap.Bool("dark", dark))
	m.syncHistory()
}

// syncHistory redraws the history list and keeps the cursor in view.
func (m *Model) syncHistory() {
	if len(m.snap.History) == 0 {
		m.history.SetContent(m.styles.Muted.Render("No calculations yet"))
		m.history.SetYOffset(0)
		return
	}

	lines := make([]string, len(m.snap.History))
	for i, entry := range m.snap.History {
		if i == m.cursor {
			lines[i] = m.styles.HistorySelected.Render("› " + entry)
		} else {
			lines[i] = m.styles.HistoryItem.Render("  " + entry)
		}
	}
	m.history.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.cursor < m.history.YOffset:
		m.history.SetYOffset(m.cursor)
	case m.cursor >= m.history.YOffset+m.history.Height:
		m.history.SetYOffset(m.cursor - m.history.Height + 1)
	}
}

// View renders the calculator.
func (m Model) View() string {
	sections := []string{
		m.renderScreen(),
		"",
		renderKeypad(m.styles, m.mapper.ActiveKey()),
	}
	if m.status != "" {
		sections = append(sections, "", m.styles.Error.Render(m.status))
	}
	if m.showHelp {
		sections = append(sections, "", m.help.View(m.keys))
	}
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderScreen draws everything above the keypad.
func (m Model) renderScreen() string {
	var indicators []string
	if m.snap.MemorySet {
		indicators = append(indicators, m.styles.Indicator.Render("M"))
	}
	if m.copied.Active() {
		indicators = append(indicators, m.styles.Success.Render("✓ Copied"))
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(indicators, "  "),
		m.styles.Expression.Render(m.snap.Expression),
		m.styles.Display.Render(m.snap.Display),
	)
	if !m.snap.HistoryVisible {
		return screen
	}

	panel := m.styles.Panel.Width(keypadWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.HistoryTitle.Render("History"),
			m.history.View(),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Left, screen, panel)
}
