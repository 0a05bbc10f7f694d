package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCommand is returned for identifiers that name no command.
var ErrUnknownCommand = errors.New("unknown command")

// Kind identifies a logical calculator command, independent of the device
// that produced it.
type Kind int

const (
	KindDigit Kind = iota + 1
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindBackspace
	KindPercent
	KindReciprocal
	KindSquare
	KindSquareRoot
	KindSignToggle
	KindPi
	KindMemoryClear
	KindMemoryRecall
	KindMemoryAdd
	KindMemorySubtract
	KindHistoryToggle
	KindHistoryClear
	KindHistorySelect
)

// Command is one input to the engine. Digit, Operator and Entry are only
// meaningful for KindDigit, KindOperator and KindHistorySelect.
type Command struct {
	Kind     Kind
	Digit    int
	Operator Operator
	Entry    string
}

// Command identifiers for kinds that carry no argument.
var simpleIDs = map[Kind]string{
	KindDecimal:        "decimal",
	KindEquals:         "equals",
	KindClear:          "clear",
	KindBackspace:      "backspace",
	KindPercent:        "percent",
	KindReciprocal:     "fraction",
	KindSquare:         "square",
	KindSquareRoot:     "sqrt",
	KindSignToggle:     "sign",
	KindPi:             "pi",
	KindMemoryClear:    "mc",
	KindMemoryRecall:   "mr",
	KindMemoryAdd:      "m+",
	KindMemorySubtract: "m-",
	KindHistoryToggle:  "history",
	KindHistoryClear:   "history-clear",
	KindHistorySelect:  "history-select",
}

var operatorsByID = map[string]Operator{
	"add":      OpAdd,
	"subtract": OpSubtract,
	"multiply": OpMultiply,
	"divide":   OpDivide,
}

// DigitCommand returns the command for digit d.
func DigitCommand(d int) Command {
	return Command{Kind: KindDigit, Digit: d}
}

// OperatorCommand returns the command arming op.
func OperatorCommand(op Operator) Command {
	return Command{Kind: KindOperator, Operator: op}
}

// SelectCommand returns the command re-loading a history entry.
func SelectCommand(entry string) Command {
	return Command{Kind: KindHistorySelect, Entry: entry}
}

// ID returns the stable identifier of the command, e.g. "num-7" or "add".
func (c Command) ID() string {
	switch c.Kind {
	case KindDigit:
		return "num-" + strconv.Itoa(c.Digit)
	case KindOperator:
		return c.Operator.ID()
	default:
		return simpleIDs[c.Kind]
	}
}

// ParseCommand resolves an identifier produced by Command.ID. The
// history-select command cannot be parsed since it carries an entry.
func ParseCommand(id string) (Command, error) {
	if d, ok := strings.CutPrefix(id, "num-"); ok {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 || n > 9 {
			return Command{}, fmt.Errorf("%q: %w", id, ErrUnknownCommand)
		}
		return DigitCommand(n), nil
	}
	if op, ok := operatorsByID[id]; ok {
		return OperatorCommand(op), nil
	}
	for kind, name := range simpleIDs {
		if name == id && kind != KindHistorySelect {
			return Command{Kind: kind}, nil
		}
	}
	return Command{}, fmt.Errorf("%q: %w", id, ErrUnknownCommand)
}
