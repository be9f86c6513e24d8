package engine

//go:generate go tool mockgen -destination ../internal/testutil/rtspmock/service.mock.go -package rtspmock github.com/ghettovoice/rtsp/engine Service

import (
	"context"

	"github.com/ghettovoice/rtsp/message"
)

// Service handles one inbound request and produces the response to send
// back. Serve must return a non-nil response even on error, by producing an
// appropriate 4xx/5xx response; a panic is recovered by the connection and
// treated as fatal (see [ErrServicePanicked]).
type Service interface {
	Serve(ctx context.Context, req *message.Request) *message.Response
}

// ServiceFunc adapts a plain function to [Service], mirroring
// [net/http.HandlerFunc].
type ServiceFunc func(ctx context.Context, req *message.Request) *message.Response

// Serve calls f.
func (f ServiceFunc) Serve(ctx context.Context, req *message.Request) *message.Response {
	return f(ctx, req)
}

// EmptyService answers every inbound request with 501 Not Implemented. It
// is the connection's default Service, letting a handle be used purely as
// a client.
var EmptyService Service = emptyService{}

type emptyService struct{}

func (emptyService) Serve(_ context.Context, req *message.Request) *message.Response {
	return message.NewResponseTo(req, message.StatusNotImplemented, nil)
}
