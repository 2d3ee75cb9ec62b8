// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/dispatch.go -package=mocks . Dispatcher,MessageHandler

// Completion reports the end of one unit of dispatched work.
type Completion struct {
	MessageId string
	Err       error
	Duration  time.Duration
}

// MessageHandler processes a single incoming message to its end state.
type MessageHandler interface {
	Handle(ctx context.Context, msg *IncomingMessage) error
}

// Dispatcher hands batches of messages to a MessageHandler without blocking
// the caller. Every returned channel receives exactly one Completion.
type Dispatcher interface {
	Submit(batch []*IncomingMessage) ([]<-chan Completion, error)
}
