package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/devsetup/pkg/observability"
)

// logHooks turns observability events into debug log lines.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetInstallHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *logHooks) OnItemStart(_ context.Context, id string) {
	h.logger.Debug("item started", "item", id)
}

func (h *logHooks) OnItemComplete(_ context.Context, id, outcome string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("item failed", "item", id, "elapsed", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("item finished", "item", id, "outcome", outcome, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, key string)  { h.logger.Debug("cache hit", "key", key) }
func (h *logHooks) OnCacheMiss(_ context.Context, key string) { h.logger.Debug("cache miss", "key", key) }
func (h *logHooks) OnCacheSet(_ context.Context, key string)  { h.logger.Debug("cache set", "key", key) }

func (h *logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path,
		"status", status, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
