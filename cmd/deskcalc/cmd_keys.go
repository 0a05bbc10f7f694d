package main

import (
	"fmt"
	"strings"

	"deskcalc/cmd/deskcalc/ui"
	"deskcalc/internal/keymap"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var rawKeys bool

// keysCmd prints the keyboard reference
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the keyboard reference",
	Args:  cobra.NoArgs,
	RunE:  showKeys,
}

func showKeys(cmd *cobra.Command, args []string) error {
	md := keysMarkdown()
	if rawKeys {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	style := "light"
	if cfg != nil && cfg.UI.IsDark() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render keys: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// keysMarkdown builds the reference as a markdown document.
func keysMarkdown() string {
	var b strings.Builder

	b.WriteString("# deskcalc keys\n\n")
	b.WriteString("| Key | Command |\n|-----|---------|\n")
	for _, binding := range keymap.Bindings() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", binding.Key, binding.Command)
	}

	b.WriteString("\n## Interactive only\n\n")
	b.WriteString("| Key | Action |\n|-----|--------|\n")
	for _, binding := range ui.TerminalBindings() {
		h := binding.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	b.WriteString("\nThe history keys apply while the history panel is open.\n")
	return b.String()
}
