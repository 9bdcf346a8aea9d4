package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler and drops records by package
// or tag before they reach it.
type filteringHandler struct {
	base slog.Handler
	cfg  *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{base: base, cfg: cfg}
}

// Enabled defers to the base handler's level.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// Handle applies the filters and forwards surviving records.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil || h.allowed(r) {
		return h.base.Handle(ctx, r)
	}
	return nil
}

func (h *filteringHandler) allowed(r slog.Record) bool {
	if pkg := packageOf(r.PC); pkg != "" {
		if inSet(h.cfg.disabledPackagesSet, pkg) {
			return false
		}
		if h.cfg.enabledPackagesSet != nil && !inSet(h.cfg.enabledPackagesSet, pkg) {
			return false
		}
	}

	tag, tagged := "", false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag, tagged = strings.ToLower(a.Value.String()), true
			return false
		}
		return true
	})
	if !tagged {
		// Filtering for specific tags hides untagged chatter
		return h.cfg.enabledTagsSet == nil
	}
	if inSet(h.cfg.disabledTagsSet, tag) {
		return false
	}
	return h.cfg.enabledTagsSet == nil || inSet(h.cfg.enabledTagsSet, tag)
}

// packageOf returns the directory name of the file that produced pc.
func packageOf(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}
	return strings.ToLower(filepath.Base(filepath.Dir(frame.File)))
}

func inSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.base.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.base.WithGroup(name), h.cfg)
}
