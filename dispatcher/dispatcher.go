// SPDX-License-Identifier: GPL-3.0-or-later
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"
	"github.com/CrawX/go-imap-assistant/mail"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// Dispatcher runs a MessageHandler for every submitted message on at most
// workers goroutines at a time.
type Dispatcher struct {
	handler domain.MessageHandler
	workers int64
	sem     *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	pending   int64
	completed int64
	failed    int64

	onComplete func(domain.Completion)

	l *logrus.Logger
}

func NewDispatcher(handler domain.MessageHandler, workers int) (*Dispatcher, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", workers)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		handler: handler,
		workers: int64(workers),
		sem:     semaphore.NewWeighted(int64(workers)),
		ctx:     ctx,
		cancel:  cancel,
		l:       log.Logger(log.LOG_DISPATCHER),
	}, nil
}

// OnComplete registers f to be called once per finished message, successful
// or not. It must be set before the first Submit.
func (d *Dispatcher) OnComplete(f func(domain.Completion)) {
	d.onComplete = f
}

// Submit schedules every message of batch and returns without waiting for
// them. Each returned channel yields exactly one Completion and is closed
// afterwards.
func (d *Dispatcher) Submit(batch []*domain.IncomingMessage) ([]<-chan domain.Completion, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, domain.ErrDispatcherClosed
	}

	results := make([]<-chan domain.Completion, 0, len(batch))
	for _, msg := range batch {
		ch := make(chan domain.Completion, 1)
		atomic.AddInt64(&d.pending, 1)
		d.wg.Add(1)
		go d.work(msg, ch)
		results = append(results, ch)
	}

	d.l.WithFields(logrus.Fields{"batchsize": len(batch), "pending": d.Pending()}).Debug("Submitted batch")
	return results, nil
}

func (d *Dispatcher) work(msg *domain.IncomingMessage, ch chan<- domain.Completion) {
	defer d.wg.Done()
	start := time.Now()

	err := d.sem.Acquire(d.ctx, 1)
	if err != nil {
		d.complete(msg, start, fmt.Errorf("abandoned before start: %w", err), ch)
		return
	}
	defer d.sem.Release(1)

	d.complete(msg, start, d.handle(msg), ch)
}

func (d *Dispatcher) handle(msg *domain.IncomingMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return d.handler.Handle(d.ctx, msg)
}

func (d *Dispatcher) complete(msg *domain.IncomingMessage, start time.Time, err error, ch chan<- domain.Completion) {
	c := domain.Completion{
		MessageId: msg.Id,
		Err:       err,
		Duration:  time.Since(start),
	}

	atomic.AddInt64(&d.pending, -1)
	atomic.AddInt64(&d.completed, 1)

	l := d.l.WithFields(logrus.Fields{
		"subject":  mail.ShortSubject(msg.Subject),
		"duration": c.Duration,
	})
	if err != nil {
		atomic.AddInt64(&d.failed, 1)
		l.WithError(err).Warn("Message failed")
	} else {
		l.Info("Message completed")
	}

	if d.onComplete != nil {
		d.notify(c)
	}

	ch <- c
	close(ch)
}

func (d *Dispatcher) notify(c domain.Completion) {
	defer func() {
		if r := recover(); r != nil {
			d.l.WithField("panic", r).Error("Completion callback panicked")
		}
	}()
	d.onComplete(c)
}

// Drain stops accepting submissions and waits up to timeout for the
// submitted work. Work still running after timeout has its context
// cancelled. It reports whether everything finished in time.
func (d *Dispatcher) Drain(timeout time.Duration) bool {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	finished := d.Wait(timeout)
	d.cancel()
	if finished {
		d.l.WithField("completed", d.Completed()).Info("Drained")
	} else {
		d.l.WithFields(logrus.Fields{"pending": d.Pending(), "timeout": timeout}).Warn("Drain timed out, abandoning pending work")
	}
	return finished
}

// Wait blocks until every submitted message has completed or timeout has
// passed, and reports whether all completed.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (d *Dispatcher) Workers() int {
	return int(d.workers)
}

func (d *Dispatcher) Pending() int {
	return int(atomic.LoadInt64(&d.pending))
}

// Completed counts finished messages including failed ones.
func (d *Dispatcher) Completed() int {
	return int(atomic.LoadInt64(&d.completed))
}

func (d *Dispatcher) Failed() int {
	return int(atomic.LoadInt64(&d.failed))
}
