package window

import "go.uber.org/zap"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithPlatform selects the platform backing the window, such as the GLFW platform or a
// HeadlessPlatform.
//
// Parameters:
//   - p: the platform implementation
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithPlatform(p Platform) WindowBuilderOption {
	return func(w *engineWindow) {
		w.platform = p
	}
}

// WithLogger sets the logger used for window lifecycle events.
func WithLogger(l *zap.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if l != nil {
			w.logger = l.Named("window")
		}
	}
}
