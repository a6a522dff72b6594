package debug_panel

import "go.uber.org/zap"

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*Panel)

// WithPresetPath sets the TOML file the P key saves to and LoadPreset reads by default.
//
// Parameters:
//   - path: the preset file
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithPresetPath(path string) PanelBuilderOption {
	return func(p *Panel) {
		p.presetPath = path
	}
}

// WithHidden starts the panel collapsed.
func WithHidden(hidden bool) PanelBuilderOption {
	return func(p *Panel) {
		p.hidden = hidden
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) PanelBuilderOption {
	return func(p *Panel) {
		p.logger = logger
	}
}
