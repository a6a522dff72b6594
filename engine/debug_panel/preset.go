package debug_panel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// ErrNoPresetPath is returned when a preset is saved or loaded without a path and the panel has
// none configured.
var ErrNoPresetPath = errors.New("debug panel: no preset path")

// Values returns the current value of every control keyed by folder, then control name.
func (p *Panel) Values() map[string]map[string]any {
	out := make(map[string]map[string]any)
	for _, b := range p.Bindings() {
		folder, ok := out[b.Folder()]
		if !ok {
			folder = make(map[string]any)
			out[b.Folder()] = folder
		}
		folder[b.Name()] = b.Encode()
	}
	return out
}

// SavePreset writes the current values as TOML, one table per folder.
//
// Parameters:
//   - path: the file to write; "" uses the configured preset path
//
// Returns:
//   - error: error if there is no path or the file cannot be written
func (p *Panel) SavePreset(path string) error {
	path, err := p.resolve(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p.Values())
	if err != nil {
		return fmt.Errorf("debug panel: encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("debug panel: write preset: %w", err)
	}
	p.logger.Info("preset saved", zap.String("path", path))
	return nil
}

// LoadPreset reads a TOML preset and applies it.
//
// Parameters:
//   - path: the file to read; "" uses the configured preset path
//
// Returns:
//   - error: error if the file cannot be read or parsed, or any value fails to apply
func (p *Panel) LoadPreset(path string) error {
	path, err := p.resolve(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("debug panel: read preset: %w", err)
	}
	if err := p.ApplyPreset(data); err != nil {
		return err
	}
	p.logger.Info("preset loaded", zap.String("path", path))
	return nil
}

// ApplyPreset applies TOML-encoded values. Unknown folders and controls are logged and skipped;
// every value that fails to apply is reported in the joined error while the rest still apply.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - error: error if the document does not parse or any value has the wrong type
func (p *Panel) ApplyPreset(data []byte) error {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("debug panel: parse preset: %w", err)
	}

	var errs []error
	for folderName, raw := range doc {
		table, ok := raw.(map[string]any)
		if !ok {
			p.logger.Warn("preset entry is not a folder", zap.String("key", folderName))
			continue
		}
		for name, v := range table {
			b, ok := p.Lookup(folderName, name)
			if !ok {
				p.logger.Warn("preset names unknown control", zap.String("folder", folderName), zap.String("name", name))
				continue
			}
			if err := b.Apply(v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Watch reloads the preset whenever the file is written. The watcher only flags the change; the
// reload happens in the next Poll so controls are always set from the render thread.
//
// Parameters:
//   - path: the file to watch; "" uses the configured preset path
//
// Returns:
//   - error: error if the watcher cannot be created
func (p *Panel) Watch(path string) error {
	path, err := p.resolve(path)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("debug panel: watch preset: %w", err)
	}
	// Editors often replace files instead of writing them, so the directory is watched.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("debug panel: watch preset: %w", err)
	}

	p.mu.Lock()
	if p.watcher != nil {
		p.mu.Unlock()
		w.Close()
		return errors.New("debug panel: already watching a preset")
	}
	p.watcher = w
	p.presetPath = abs
	p.watchDone = make(chan struct{})
	done := p.watchDone
	p.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				p.reload.Store(true)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.logger.Warn("preset watcher error", zap.Error(err))
			}
		}
	}()
	p.logger.Info("watching preset", zap.String("path", abs))
	return nil
}

// Poll applies a pending preset reload. It is called once per frame.
//
// Returns:
//   - bool: true if a preset was reloaded
func (p *Panel) Poll() bool {
	if !p.reload.CompareAndSwap(true, false) {
		return false
	}
	if err := p.LoadPreset(""); err != nil {
		p.logger.Warn("preset reload failed", zap.Error(err))
		return false
	}
	return true
}

func (p *Panel) resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.presetPath == "" {
		return "", ErrNoPresetPath
	}
	return p.presetPath, nil
}
