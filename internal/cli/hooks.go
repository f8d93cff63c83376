package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chocolatl/cocos-texture-packer/pkg/observability"
)

// debugHooks reports pipeline and cache events as debug log lines.
type debugHooks struct {
	logger *log.Logger
}

var (
	_ observability.PackHooks  = debugHooks{}
	_ observability.CacheHooks = debugHooks{}
)

func (h debugHooks) OnGenerateStart(_ context.Context, sprites, pending int) {
	h.logger.Debug("generate", "sprites", sprites, "decode", pending)
}

func (h debugHooks) OnGenerateComplete(_ context.Context, sheets int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "took", d, "error", err)
		return
	}
	h.logger.Debug("generated", "sheets", sheets, "took", d)
}

func (h debugHooks) OnWriteComplete(_ context.Context, enc string, files int, d time.Duration, err error) {
	h.logger.Debug("write", "encoder", enc, "files", files, "took", d, "error", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// registerHooks routes observability events to logger.
func registerHooks(logger *log.Logger) {
	h := debugHooks{logger: logger}
	observability.SetPackHooks(h)
	observability.SetCacheHooks(h)
}
