package config

// Theme names accepted by UIConfig.Theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds terminal user interface configuration.
type UIConfig struct {
	// Theme is "light" or "dark".
	Theme string `json:"theme" yaml:"theme"`

	// CopyConfirmDelay is how long the "copied" indicator stays visible.
	CopyConfirmDelay string `json:"copy_confirm_delay,omitempty" yaml:"copy_confirm_delay,omitempty"`

	// WatchConfig reloads the theme when the config file changes.
	WatchConfig bool `json:"watch_config" yaml:"watch_config"`

	// ShowHelp shows the key help line under the keypad.
	ShowHelp bool `json:"show_help" yaml:"show_help"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:            ThemeDark,
		CopyConfirmDelay: "2s",
		WatchConfig:      true,
		ShowHelp:         true,
	}
}

// IsDark reports whether the dark palette is selected.
func (c *UIConfig) IsDark() bool {
	return c.Theme != ThemeLight
}
