// Package keymap translates physical key identifiers into calculator
// commands and tracks which command was last triggered from the keyboard.
//
// Key identifiers follow the browser KeyboardEvent.key naming: printable
// keys are their character ("7", "+", "s") and named keys use their name
// ("Enter", "Escape", "Backspace").
package keymap

import (
	"sort"
	"time"
)

// DefaultActiveDelay is how long a key stays highlighted.
const DefaultActiveDelay = 150 * time.Millisecond

// bindings maps key identifiers to command identifiers.
var bindings = map[string]string{
	"0":         "num-0",
	"1":         "num-1",
	"2":         "num-2",
	"3":         "num-3",
	"4":         "num-4",
	"5":         "num-5",
	"6":         "num-6",
	"7":         "num-7",
	"8":         "num-8",
	"9":         "num-9",
	".":         "decimal",
	"+":         "add",
	"-":         "subtract",
	"*":         "multiply",
	"/":         "divide",
	"Enter":     "equals",
	"=":         "equals",
	"Escape":    "clear",
	"Backspace": "backspace",
	"%":         "percent",
	"s":         "square",
	"S":         "square",
	"r":         "sqrt",
	"R":         "sqrt",
	"p":         "pi",
	"P":         "pi",
	"h":         "history",
	"H":         "history",
}

// preventDefault lists keys whose host default action must be suppressed.
var preventDefault = map[string]bool{
	"/":     true,
	"*":     true,
	"-":     true,
	"+":     true,
	"=":     true,
	"Enter": true,
}

// Lookup returns the command identifier bound to key.
func Lookup(key string) (string, bool) {
	id, ok := bindings[key]
	return id, ok
}

// PreventsDefault reports whether the host should suppress its default
// handling of key.
func PreventsDefault(key string) bool {
	return preventDefault[key]
}

// Binding is one row of the key table.
type Binding struct {
	Key     string
	Command string
}

// Bindings returns the key table ordered by command, then key.
func Bindings() []Binding {
	out := make([]Binding, 0, len(bindings))
	for key, id := range bindings {
		out = append(out, Binding{Key: key, Command: id})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Command != out[j].Command {
			return out[i].Command < out[j].Command
		}
		return out[i].Key < out[j].Key
	})
	return out
}
