package main

import (
	"fmt"

	"deskcalc/internal/calc"
	"deskcalc/internal/keymap"
	"deskcalc/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showHistory bool

// namedKeys are passed through whole rather than split into characters.
var namedKeys = map[string]bool{
	"Enter":     true,
	"Escape":    true,
	"Backspace": true,
}

// evalCmd replays key presses through a fresh engine
var evalCmd = &cobra.Command{
	Use:   "eval <keys>...",
	Short: "Replay key presses and print the display",
	Long: `Feeds each character of the arguments to the calculator as a key press,
exactly as typed in the interactive calculator. Enter, Escape and Backspace
may be given as separate arguments. Unbound characters are ignored.

Examples:
  deskcalc eval "2+3*4="          # 20
  deskcalc eval 50%               # 0.5
  deskcalc eval 12 Backspace 5=   # 15
  deskcalc eval --history 1/0= 7+1=`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	engine := calc.New(calc.WithLogger(categoryLogger(cmd, logging.CategoryEngine)))
	mapper := keymap.New(engine, keymap.WithLogger(categoryLogger(cmd, logging.CategoryKeymap)))
	defer mapper.Close()

	keys := splitKeys(args)
	logger.Debug("replaying keys", zap.Int("count", len(keys)), zap.String("session", engine.SessionID()))

	for _, k := range keys {
		if _, err := mapper.HandleKey(k); err != nil {
			return fmt.Errorf("eval: %w", err)
		}
	}

	snap := engine.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, snap.Display)
	if showHistory {
		for _, entry := range snap.History {
			fmt.Fprintln(out, entry)
		}
	}
	return nil
}

// splitKeys turns arguments into key identifiers.
func splitKeys(args []string) []string {
	var keys []string
	for _, arg := range args {
		if namedKeys[arg] {
			keys = append(keys, arg)
			continue
		}
		for _, r := range arg {
			if r == ' ' {
				continue
			}
			keys = append(keys, string(r))
		}
	}
	return keys
}
