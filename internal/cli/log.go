package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/icview/pkg/errors"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Loaded top.toml (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks writes classification, cache and edit events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnClassifyStart(layer, purpose string) {
	h.logger.Debug("classify", "layer", layer, "purpose", purpose)
}

func (h logHooks) OnClassifyComplete(layer string, cells, shapes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("classify failed", "layer", layer, "err", err)
		return
	}
	h.logger.Debug("classified", "layer", layer, "cells", cells, "shapes", shapes, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(layer string)        { h.logger.Debug("cache hit", "layer", layer) }
func (h logHooks) OnCacheMiss(layer string)       { h.logger.Debug("cache miss", "layer", layer) }
func (h logHooks) OnCacheInvalidate(layer string) { h.logger.Debug("cache invalidated", "layer", layer) }

func (h logHooks) OnLayerEdit(layer, attr string, err error) {
	if err != nil {
		h.logger.Debug("edit rejected", "layer", layer, "attr", attr, "code", errors.GetCode(err), "err", err)
		return
	}
	h.logger.Debug("edit applied", "layer", layer, "attr", attr)
}
