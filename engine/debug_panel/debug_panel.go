// Package debug_panel is a keyboard-driven parameter panel. Controls are grouped in folders and
// bound to live values through getter and setter functions; presets are TOML files that can be
// watched and reapplied while the program runs.
package debug_panel

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Folder groups controls under a name.
type Folder struct {
	panel *Panel
	name  string
}

// Panel holds the folders and controls of one demo and translates key presses into edits.
// Key handling, Poll and preset application run on the render thread; the preset watcher only
// raises a flag that the next Poll consumes.
type Panel struct {
	mu *sync.Mutex

	title   string
	logger  *zap.Logger
	folders []string
	list    []Binding

	selected int
	hidden   bool
	shift    bool

	presetPath string
	watcher    *fsnotify.Watcher
	reload     atomic.Bool
	watchDone  chan struct{}
}

// NewPanel creates an empty panel.
//
// Parameters:
//   - title: the panel heading, usually the demo name
//   - options: functional options to configure the panel
//
// Returns:
//   - *Panel: the panel
func NewPanel(title string, options ...PanelBuilderOption) *Panel {
	p := &Panel{
		mu:     &sync.Mutex{},
		title:  title,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger).Named("panel")
	return p
}

// Folder returns the folder with the given name, creating it on first use.
func (p *Panel) Folder(name string) *Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	found := false
	for _, f := range p.folders {
		if f == name {
			found = true
			break
		}
	}
	if !found {
		p.folders = append(p.folders, name)
	}
	return &Folder{panel: p, name: name}
}

// AddFloat binds a float parameter clamped to [lo, hi] and edited in increments of step.
//
// Parameters:
//   - name: the control label
//   - get, set: accessors of the live value
//   - lo, hi: the allowed range
//   - step: the keyboard increment; <= 0 uses a hundredth of the range
//
// Returns:
//   - *Control[float32]: the control, for registering change handlers
func (f *Folder) AddFloat(name string, get func() float32, set func(float32), lo, hi, step float32) *Control[float32] {
	c := newFloatControl(f.name, name, get, set, lo, hi, step)
	f.panel.add(c)
	return c
}

// AddInt binds an integer parameter clamped to [lo, hi].
func (f *Folder) AddInt(name string, get func() int, set func(int), lo, hi, step int) *Control[int] {
	c := newIntControl(f.name, name, get, set, lo, hi, step)
	f.panel.add(c)
	return c
}

// AddBool binds a toggle.
func (f *Folder) AddBool(name string, get func() bool, set func(bool)) *Control[bool] {
	c := newBoolControl(f.name, name, get, set)
	f.panel.add(c)
	return c
}

// AddColor binds a color. Left and Right rotate its hue; presets store it as hex.
func (f *Folder) AddColor(name string, get func() common.Color, set func(common.Color)) *Control[common.Color] {
	c := newColorControl(f.name, name, get, set)
	f.panel.add(c)
	return c
}

// AddChoice binds a string limited to a fixed list of options.
func (f *Folder) AddChoice(name string, get func() string, set func(string), options []string) *Control[string] {
	c := newChoiceControl(f.name, name, get, set, options)
	f.panel.add(c)
	return c
}

func (p *Panel) add(b Binding) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.list = append(p.list, b)
}

// Bindings returns every control in registration order.
func (p *Panel) Bindings() []Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Binding(nil), p.list...)
}

// Lookup finds a control by folder and name.
func (p *Panel) Lookup(folder, name string) (Binding, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.list {
		if b.Folder() == folder && b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// Selected returns the control the keyboard edits, or nil for an empty panel.
func (p *Panel) Selected() Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.list) == 0 {
		return nil
	}
	return p.list[p.selected]
}

// Hidden reports whether the panel is collapsed.
func (p *Panel) Hidden() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hidden
}

// SetHidden collapses or expands the panel.
func (p *Panel) SetHidden(hidden bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden = hidden
}

// HandleKeyDown drives the panel: Tab and Shift+Tab (or Down and Up) select, Left and Right step the selected
// control, Space toggles a bool, H hides the panel and P saves the preset. While hidden only H
// is handled.
//
// Parameters:
//   - keyCode: the key pressed
//
// Returns:
//   - bool: true if the panel consumed the key
func (p *Panel) HandleKeyDown(keyCode uint32) bool {
	switch keyCode {
	case common.KeyLeftShift, common.KeyRightShift:
		p.mu.Lock()
		p.shift = true
		p.mu.Unlock()
		return false
	case common.KeyH:
		p.mu.Lock()
		p.hidden = !p.hidden
		hidden := p.hidden
		p.mu.Unlock()
		p.logger.Debug("panel toggled", zap.Bool("hidden", hidden))
		return true
	}

	p.mu.Lock()
	if p.hidden || len(p.list) == 0 {
		p.mu.Unlock()
		return false
	}
	sel := p.list[p.selected]
	switch keyCode {
	case common.KeyTab, common.KeyUp, common.KeyDown:
		dir := 1
		if keyCode == common.KeyUp || (keyCode == common.KeyTab && p.shift) {
			dir = -1
		}
		n := len(p.list)
		p.selected = ((p.selected+dir)%n + n) % n
		p.mu.Unlock()
		return true
	}
	p.mu.Unlock()

	switch keyCode {
	case common.KeyLeft, common.KeyRight:
		dir := 1
		if keyCode == common.KeyLeft {
			dir = -1
		}
		sel.Step(dir)
		p.logger.Debug("control changed", zap.String("folder", sel.Folder()),
			zap.String("name", sel.Name()), zap.String("value", sel.String()))
		return true
	case common.KeySpace:
		if sel.Kind() != KindBool {
			return false
		}
		sel.Step(1)
		p.commit(sel)
		return true
	case common.KeyP:
		if err := p.SavePreset(""); err != nil {
			p.logger.Warn("save preset failed", zap.Error(err))
		}
		return true
	}
	return false
}

// HandleKeyUp commits a Left/Right edit and tracks the shift modifier.
//
// Parameters:
//   - keyCode: the key released
func (p *Panel) HandleKeyUp(keyCode uint32) {
	p.mu.Lock()
	switch keyCode {
	case common.KeyLeftShift, common.KeyRightShift:
		p.shift = false
		p.mu.Unlock()
		return
	}
	if p.hidden || len(p.list) == 0 || (keyCode != common.KeyLeft && keyCode != common.KeyRight) {
		p.mu.Unlock()
		return
	}
	sel := p.list[p.selected]
	p.mu.Unlock()
	p.commit(sel)
}

func (p *Panel) commit(b Binding) {
	b.Commit()
	p.logger.Info("control committed", zap.String("folder", b.Folder()),
		zap.String("name", b.Name()), zap.String("value", b.String()))
}

// Status returns a one-line readout of the selected control, or "" when hidden or empty.
func (p *Panel) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hidden || len(p.list) == 0 {
		return ""
	}
	b := p.list[p.selected]
	return fmt.Sprintf("[%s] %s: %s (%d/%d)", b.Folder(), b.Name(), b.String(), p.selected+1, len(p.list))
}

// Close stops the preset watcher.
func (p *Panel) Close() error {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.mu.Unlock()
	if w == nil {
		return nil
	}
	err := w.Close()
	<-p.watchDone
	return err
}
