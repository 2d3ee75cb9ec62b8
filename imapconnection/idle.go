// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/emersion/go-imap/client"
)

// waiter turns IDLE plus the unilateral mailbox updates of a session into
// single wait results. Updates must be consumed continuously, the client
// blocks its reader otherwise.
type waiter struct {
	client  idleClient
	signals chan struct{}
	quit    chan struct{}
}

func newWaiter(c idleClient) *waiter {
	return &waiter{
		client:  c,
		signals: make(chan struct{}, 1),
		quit:    make(chan struct{}),
	}
}

func (w *waiter) forward(updates <-chan client.Update) {
	for {
		select {
		case u := <-updates:
			// EXISTS and RECENT both arrive as mailbox updates
			if _, ok := u.(*client.MailboxUpdate); ok {
				w.notify()
			}
		case <-w.quit:
			return
		}
	}
}

func (w *waiter) notify() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

func (w *waiter) close() {
	select {
	case <-w.quit:
	default:
		close(w.quit)
	}
}

// reset drops signals caused by our own commands, e.g. SELECT.
func (w *waiter) reset() {
	w.drain(domain.WaitTimeout)
}

func (w *waiter) drain(result domain.WaitResult) domain.WaitResult {
	for {
		select {
		case <-w.signals:
			if result != domain.WaitStopped {
				result = domain.WaitSignal
			}
		default:
			return result
		}
	}
}

func (w *waiter) wait(timeout time.Duration, stop <-chan struct{}) (domain.WaitResult, error) {
	// a change reported during the previous commands counts as well
	select {
	case <-w.signals:
		return w.drain(domain.WaitSignal), nil
	default:
	}

	idleStop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- w.client.Idle(idleStop, &client.IdleOptions{LogoutTimeout: -1})
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	result := domain.WaitTimeout
	select {
	case err := <-done:
		if err != nil {
			return domain.WaitTimeout, fmt.Errorf("%w: idle failed: %w", domain.ErrTransport, err)
		}
		// server terminated the idle on its own
		return w.drain(domain.WaitTimeout), nil
	case <-w.signals:
		result = domain.WaitSignal
	case <-timer.C:
	case <-stop:
		result = domain.WaitStopped
	}

	close(idleStop)
	if err := <-done; err != nil {
		return result, fmt.Errorf("%w: could not leave idle: %w", domain.ErrTransport, err)
	}

	return w.drain(result), nil
}
