package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing structured log lines.
// Successful events log at debug level; overflows and failures at warn.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h LogHooks) OnBreakStart(_ context.Context, mode string, elements int) {
	h.logger().Debug("breaking", "mode", mode, "elements", elements)
}

func (h LogHooks) OnBreakComplete(_ context.Context, mode string, containers int, d time.Duration, err error) {
	if err != nil {
		h.logger().Warn("breaking failed", "mode", mode, "elapsed", d, "err", err)
		return
	}
	h.logger().Debug("breaking done", "mode", mode, "containers", containers, "elapsed", d)
}

func (h LogHooks) OnRecovery(_ context.Context, mode string, attempts int, degraded bool) {
	h.logger().Debug("recovered from overflow", "mode", mode, "attempts", attempts, "degraded", degraded)
}

func (h LogHooks) OnOverflow(_ context.Context, mode string, container, amount int) {
	h.logger().Warn("container overflows", "mode", mode, "container", container, "amount", amount)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger().Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger().Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger().Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.logger().Debug("request", "method", method, "path", path, "id", requestID)
}

func (h LogHooks) OnResponse(_ context.Context, method, path, requestID string, status int, d time.Duration) {
	h.logger().Info("response", "method", method, "path", path, "id", requestID, "status", status, "elapsed", d)
}
