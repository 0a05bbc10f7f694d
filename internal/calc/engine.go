package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot is the externally observable state of an Engine.
type Snapshot struct {
	Display         string
	LastCalculation string
	// Expression is the secondary display line: the last calculation when
	// one is shown, otherwise a preview of the armed operation.
	Expression      string
	Memory          float64
	MemorySet       bool
	History         []string
	HistoryVisible  bool
	EntryMode       bool
	PendingOperator Operator
}

// Engine is the calculator state machine. It owns the display buffer, the
// pending operand and operator, the memory register and the history log.
// An Engine is driven from a single goroutine and is not safe for
// concurrent use.
type Engine struct {
	display    string
	label      string
	operand    float64
	hasOperand bool
	operator   Operator
	newNumber  bool

	memory  Memory
	history *History

	sessionID string
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an engine in its initial state: display "0", nothing
// pending, empty memory and history.
func New(opts ...Option) *Engine {
	e := &Engine{
		display:   "0",
		newNumber: true,
		history:   NewHistory(),
		sessionID: uuid.NewString(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("session", e.sessionID))
	return e
}

// SessionID identifies this engine instance in logs.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Dispatch applies cmd and returns the resulting state.
func (e *Engine) Dispatch(cmd Command) (Snapshot, error) {
	var err error

	switch cmd.Kind {
	case KindDigit:
		err = e.Digit(cmd.Digit)
	case KindDecimal:
		e.Decimal()
	case KindOperator:
		if !cmd.Operator.Valid() {
			err = fmt.Errorf("operator %d: %w", int(cmd.Operator), ErrUnknownOperator)
			break
		}
		e.Operation(cmd.Operator)
	case KindEquals:
		e.Equals()
	case KindClear:
		e.Clear()
	case KindBackspace:
		e.Backspace()
	case KindPercent:
		e.Percent()
	case KindReciprocal:
		e.Reciprocal()
	case KindSquare:
		e.Square()
	case KindSquareRoot:
		e.SquareRoot()
	case KindSignToggle:
		e.ToggleSign()
	case KindPi:
		e.Pi()
	case KindMemoryClear:
		e.MemoryClear()
	case KindMemoryRecall:
		e.MemoryRecall()
	case KindMemoryAdd:
		e.MemoryAdd()
	case KindMemorySubtract:
		e.MemorySubtract()
	case KindHistoryToggle:
		e.ToggleHistory()
	case KindHistoryClear:
		e.ClearHistory()
	case KindHistorySelect:
		err = e.SelectHistory(cmd.Entry)
	default:
		err = fmt.Errorf("kind %d: %w", int(cmd.Kind), ErrUnknownCommand)
	}

	if err != nil {
		e.logger.Warn("command rejected", zap.String("command", cmd.ID()), zap.Error(err))
		return e.Snapshot(), err
	}

	e.logger.Debug("command applied",
		zap.String("command", cmd.ID()),
		zap.String("display", e.display),
		zap.Bool("entry_mode", e.newNumber),
	)
	return e.Snapshot(), nil
}

// Snapshot returns the current observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Display:         e.display,
		LastCalculation: e.label,
		Expression:      e.expression(),
		Memory:          e.memory.Recall(),
		MemorySet:       e.memory.IsSet(),
		History:         e.history.Entries(),
		HistoryVisible:  e.history.Visible(),
		EntryMode:       e.newNumber,
		PendingOperator: e.operator,
	}
}

// Display returns the display buffer.
func (e *Engine) Display() string {
	return e.display
}

// Digit enters d. A fresh number replaces the display; otherwise d is
// appended unless the buffer is full.
func (e *Engine) Digit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("digit %d: %w", d, ErrUnknownCommand)
	}
	digit := strconv.Itoa(d)

	if e.newNumber {
		e.display = digit
		e.newNumber = false
		return nil
	}
	if len(e.display) >= MaxDisplayLen {
		return nil
	}
	if e.display == "0" {
		e.display = digit
	} else {
		e.display += digit
	}
	return nil
}

// Decimal enters a decimal point.
func (e *Engine) Decimal() {
	if e.newNumber {
		e.display = "0."
		e.newNumber = false
		return
	}
	if !strings.Contains(e.display, ".") && len(e.display) < MaxDisplayLen {
		e.display += "."
	}
}

// Operation arms op. If an operation is already pending it is resolved
// first and its result becomes the new pending operand.
func (e *Engine) Operation(op Operator) {
	current := Parse(e.display)

	if !e.hasOperand {
		e.operand = current
		e.hasOperand = true
		e.label = ""
	} else if e.operator != OpNone {
		e.operand = e.resolve(current)
	}

	e.operator = op
	e.newNumber = true
}

// Equals resolves the pending operation. It does nothing when no operation
// is armed, so a repeated equals is a no-op.
func (e *Engine) Equals() {
	if e.operator == OpNone || !e.hasOperand {
		return
	}

	e.resolve(Parse(e.display))
	e.operand = 0
	e.hasOperand = false
	e.operator = OpNone
	e.newNumber = true
}

// resolve evaluates operand <operator> current, records the calculation and
// shows the result. Failed evaluations resolve to NaN.
func (e *Engine) resolve(current float64) float64 {
	result, err := Evaluate(e.operand, current, e.operator)
	if err != nil {
		e.logger.Debug("evaluation failed",
			zap.Float64("operand", e.operand),
			zap.Float64("current", current),
			zap.Stringer("operator", e.operator),
			zap.Error(err),
		)
		result = math.NaN()
	}

	e.label = FormatLabel(e.operand, e.operator, current)
	e.history.Append(FormatEntry(e.operand, e.operator, current, result))
	e.display = Format(result)
	return result
}

// Clear resets the calculation. Memory and history are kept.
func (e *Engine) Clear() {
	e.display = "0"
	e.operand = 0
	e.hasOperand = false
	e.operator = OpNone
	e.newNumber = true
	e.label = ""
}

// Backspace drops the last character. Removing the last remaining
// character, or backspacing over the error marker, resets to "0".
func (e *Engine) Backspace() {
	if len(e.display) > 1 && e.display != ErrorMarker {
		e.display = e.display[:len(e.display)-1]
		if e.display != "-" {
			return
		}
	}
	e.display = "0"
	e.newNumber = true
}

// ToggleSign negates the display. Entry mode is unchanged.
func (e *Engine) ToggleSign() {
	e.display = Format(-Parse(e.display))
	e.label = ""
}

// Percent shows operand×current/100 while an operation is armed, without
// committing it. Otherwise it converts the display to a fraction of 100.
func (e *Engine) Percent() {
	current := Parse(e.display)
	if e.hasOperand && e.operator != OpNone {
		e.display = Format(e.operand * current / 100)
	} else {
		e.display = Format(current / 100)
		e.label = ""
	}
	e.newNumber = true
}

// Reciprocal replaces the display with 1/x. Zero is left untouched.
func (e *Engine) Reciprocal() {
	current := Parse(e.display)
	if current == 0 {
		return
	}
	e.unary(1 / current)
}

// Square replaces the display with x².
func (e *Engine) Square() {
	current := Parse(e.display)
	e.unary(current * current)
}

// SquareRoot replaces the display with √x, or the error marker for a
// negative operand.
func (e *Engine) SquareRoot() {
	current := Parse(e.display)
	if current >= 0 {
		e.unary(math.Sqrt(current))
		return
	}
	e.logger.Debug("evaluation failed", zap.Float64("current", current), zap.Error(ErrNegativeRoot))
	e.display = ErrorMarker
	e.newNumber = true
	e.label = ""
}

// Pi shows π.
func (e *Engine) Pi() {
	e.unary(math.Pi)
}

func (e *Engine) unary(v float64) {
	e.display = Format(v)
	e.newNumber = true
	e.label = ""
}

// MemoryClear empties the memory register.
func (e *Engine) MemoryClear() {
	e.memory.Clear()
}

// MemoryRecall shows the memory value. A register holding 0 is ignored.
func (e *Engine) MemoryRecall() {
	v := e.memory.Recall()
	if v == 0 {
		return
	}
	e.display = Format(v)
	e.newNumber = true
}

// MemoryAdd adds the display value to memory.
func (e *Engine) MemoryAdd() {
	e.memory.Add(Parse(e.display))
}

// MemorySubtract subtracts the display value from memory.
func (e *Engine) MemorySubtract() {
	e.memory.Subtract(Parse(e.display))
}

// ToggleHistory opens or closes the history panel.
func (e *Engine) ToggleHistory() {
	e.history.Toggle()
}

// ClearHistory empties the history log and closes the panel.
func (e *Engine) ClearHistory() {
	e.history.Clear()
	e.history.Hide()
}

// SelectHistory loads the result of entry into the display and closes the
// panel. A malformed entry leaves the engine unchanged.
func (e *Engine) SelectHistory(entry string) error {
	v, err := e.history.SelectResult(entry)
	if err != nil {
		return err
	}
	e.display = Format(v)
	e.newNumber = true
	e.history.Hide()
	return nil
}

func (e *Engine) expression() string {
	if e.label != "" {
		return e.label
	}
	if !e.hasOperand || e.operator == OpNone {
		return ""
	}
	expr := Number(e.operand) + " " + e.operator.String()
	if !e.newNumber {
		expr += " " + e.display
	}
	return expr
}
