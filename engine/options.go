package engine

import (
	"log/slog"
	"time"

	"github.com/ghettovoice/rtsp/log"
)

// defaultWriterQueueSize bounds the number of outbound items (requests and
// inbound-service responses) the writer goroutine will buffer before
// SendRequest and service completions start blocking.
const defaultWriterQueueSize = 64

// defaultMaxConcurrentInbound bounds the number of inbound requests
// being served concurrently before the reader stops accepting new ones.
const defaultMaxConcurrentInbound = 256

// Options configures a [Connection]. The zero value is valid and selects
// all defaults.
type Options struct {
	// Service handles inbound requests. EmptyService is used if nil.
	Service Service
	// WriterQueueSize bounds the writer's item backlog. 0 selects the
	// default of 64.
	WriterQueueSize int
	// MaxConcurrentInbound bounds concurrently in-flight inbound service
	// calls. 0 selects the default of 256.
	MaxConcurrentInbound int
	// DefaultTimeout is applied to a SendRequest call that does not carry
	// its own deadline via ctx. Zero means no timeout beyond ctx.
	DefaultTimeout time.Duration
	// Logger receives connection lifecycle and error events. The package
	// default logger is used if nil.
	Logger *slog.Logger
}

func (o *Options) service() Service {
	if o == nil || o.Service == nil {
		return EmptyService
	}
	return o.Service
}

func (o *Options) writerQueueSize() int {
	if o == nil || o.WriterQueueSize <= 0 {
		return defaultWriterQueueSize
	}
	return o.WriterQueueSize
}

func (o *Options) maxConcurrentInbound() int {
	if o == nil || o.MaxConcurrentInbound <= 0 {
		return defaultMaxConcurrentInbound
	}
	return o.MaxConcurrentInbound
}

func (o *Options) defaultTimeout() time.Duration {
	if o == nil {
		return 0
	}
	return o.DefaultTimeout
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}
