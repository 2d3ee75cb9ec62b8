// SPDX-License-Identifier: GPL-3.0-or-later
package watcher

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"
	"github.com/CrawX/go-imap-assistant/mail"

	"github.com/sirupsen/logrus"
)

const FetchBatchSize = 50

// minRetryDelay keeps a failing connection from hot-looping.
var minRetryDelay = time.Second

// Watcher detects new mail in one mailbox, either through IMAP IDLE or by
// polling, and submits it to a dispatcher. A single goroutine owns the imap
// session; reconnecting always closes the previous session first.
type Watcher struct {
	dialer     domain.ImapDialer
	dispatcher domain.Dispatcher
	config     *configuration
	dedup      *DedupCache
	parse      func(raw *domain.RawImapMail, fallbackId string) (*domain.IncomingMessage, error)

	mu          sync.Mutex
	state       State
	mode        Mode
	uidValidity uint32
	cursor      uint32
	detected    int
	failures    int
	idleErrors  int
	running     bool
	stop        chan struct{}
	done        chan struct{}

	// owned by the loop goroutine
	conn    domain.ImapConnector
	archive bool

	l *logrus.Logger
}

func NewWatcher(dialer domain.ImapDialer, dispatcher domain.Dispatcher, mailbox string, configFunc ...ConfigFunc) (*Watcher, error) {
	if len(mailbox) == 0 {
		return nil, fmt.Errorf("mailbox cannot be empty")
	}

	config := defaultConfiguration(mailbox)
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	mode := ModeIdle
	if config.ForcePolling {
		mode = ModePolling
	}

	return &Watcher{
		dialer:     dialer,
		dispatcher: dispatcher,
		config:     config,
		dedup:      NewDedupCache(config.DedupCapacity),
		parse:      mail.ParseIncoming,
		state:      Stopped,
		mode:       mode,
		l:          log.Logger(log.LOG_WATCHER),
	}, nil
}

// Start launches the detection loop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher is already running")
	}
	if w.done != nil {
		select {
		case <-w.done:
		default:
			return fmt.Errorf("previous detection loop is still shutting down")
		}
	}

	w.running = true
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	w.state = Connecting
	go w.loop(w.stop, w.done)

	w.l.WithFields(logrus.Fields{"mailbox": w.config.Mailbox, "mode": w.mode}).Info("Started")
	return nil
}

// Stop interrupts any wait or sleep and joins the detection loop for at most
// timeout. A fetch in progress is allowed to finish.
func (w *Watcher) Stop(timeout time.Duration) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stop)
	done := w.done
	w.mu.Unlock()

	select {
	case <-done:
		w.l.Info("Stopped")
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("detection loop did not stop within %v", timeout)
	}
}

func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Stats{
		State:       w.state,
		Mode:        w.mode,
		UidValidity: w.uidValidity,
		Cursor:      w.cursor,
		DedupSize:   w.dedup.Len(),
		Detected:    w.detected,
		Failures:    w.failures,
		IdleErrors:  w.idleErrors,
	}
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		err := w.connect()
		if err == nil {
			err = w.watch(stop)
		}
		w.disconnect()

		if stopped(stop) {
			w.setState(Stopped)
			return
		}

		if err == nil {
			err = errors.New("detection ended unexpectedly")
		}
		w.fail(err)

		if !sleep(stop, w.config.RetryDelay) {
			w.setState(Stopped)
			return
		}
	}
}

func (w *Watcher) connect() error {
	w.setState(Connecting)

	conn, err := w.dialer.Dial()
	if err != nil {
		return fmt.Errorf("could not connect: %w", err)
	}
	w.conn = conn

	uidValidity, err := conn.Select(w.config.Mailbox)
	if err != nil {
		return fmt.Errorf("could not select %s: %w", w.config.Mailbox, err)
	}

	w.mu.Lock()
	previous := w.uidValidity
	changed := previous != uidValidity
	if changed {
		w.uidValidity = uidValidity
		w.cursor = 0
	}
	w.mu.Unlock()

	if changed {
		if previous != 0 {
			w.l.WithFields(logrus.Fields{"previous": previous, "uidvalidity": uidValidity}).Warn("UIDVALIDITY changed, resetting known mails")
		}
		w.dedup.Reset()

		err = w.initialSync()
		if err != nil {
			return err
		}
	}

	w.archive = false
	if len(w.config.ArchiveFolder) > 0 {
		notReadyReason, err := conn.ArchiveReady()
		if err != nil {
			return fmt.Errorf("could not check for archive readiness: %w", err)
		}

		if notReadyReason != nil {
			w.l.WithFields(logrus.Fields{"folder": w.config.ArchiveFolder, "error": notReadyReason}).Warn("Mailbox is not ready for archiving, processed mails stay in place")
		} else {
			w.archive = true
		}
	}

	return nil
}

// initialSync remembers the newest unread mails present at startup so they
// are not treated as new.
func (w *Watcher) initialSync() error {
	if w.config.InitialSync == 0 {
		return nil
	}

	uids, err := w.conn.Search(domain.SearchUnseen)
	if err != nil {
		return fmt.Errorf("could not list unread mails: %w", err)
	}

	sortUids(uids)
	if len(uids) > w.config.InitialSync {
		uids = uids[len(uids)-w.config.InitialSync:]
	}
	for _, uid := range uids {
		w.dedup.Add(uid)
		w.advanceCursor(uid)
	}

	w.l.WithFields(logrus.Fields{"mailbox": w.config.Mailbox, "known": len(uids)}).Info("Synced existing unread mails")
	return nil
}

func (w *Watcher) disconnect() {
	if w.conn == nil {
		return
	}

	err := w.conn.Close()
	if err != nil {
		w.l.WithError(err).Debug("Could not close connection cleanly")
	}
	w.conn = nil
}

// watch runs until stop is closed or the session fails.
func (w *Watcher) watch(stop <-chan struct{}) error {
	err := w.process()
	if err != nil {
		return err
	}

	for {
		if stopped(stop) {
			return nil
		}

		mode := w.currentMode()
		if mode == ModeIdle && !w.conn.WaitSupported() {
			w.fallback("server does not support IDLE")
			mode = ModePolling
		}

		if mode == ModeIdle {
			w.setState(Waiting)
			result, err := w.conn.Wait(w.config.Heartbeat, stop)
			if err != nil {
				w.idleFailed()
				return fmt.Errorf("could not wait for new mail: %w", err)
			}
			w.idleSucceeded()

			if result == domain.WaitStopped {
				return nil
			}
			if result == domain.WaitTimeout {
				w.l.Debug("Heartbeat, re-entering idle")
				w.resetFailures()
				continue
			}
		} else {
			w.setState(Polling)
			if !sleep(stop, w.config.PollInterval) {
				return nil
			}
		}

		err = w.process()
		if err != nil {
			return err
		}
		w.resetFailures()
	}
}

func (w *Watcher) process() error {
	w.setState(Processing)

	uids, err := w.conn.Search(domain.SearchUnseen)
	if err != nil {
		return fmt.Errorf("could not search unread mails: %w", err)
	}

	fresh := []uint32{}
	for _, uid := range uids {
		if !w.dedup.Contains(uid) {
			fresh = append(fresh, uid)
		}
	}
	if len(fresh) == 0 {
		return nil
	}

	sortUids(fresh)
	batches := partitionUids(fresh, FetchBatchSize)
	w.l.WithFields(logrus.Fields{"mailbox": w.config.Mailbox, "newmails": len(fresh), "batches": len(batches)}).Info("Found new mails")

	for _, batch := range batches {
		err = w.processBatch(batch)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Watcher) processBatch(batch []uint32) error {
	start := time.Now()

	rawMails, err := w.conn.FetchMails(batch)
	if err != nil {
		return fmt.Errorf("could not fetch mail batch: %w", err)
	}

	w.mu.Lock()
	uidValidity := w.uidValidity
	w.mu.Unlock()

	messages := []*domain.IncomingMessage{}
	handled := []uint32{}
	for _, raw := range rawMails {
		if !w.dedup.Add(raw.Uid) {
			continue
		}
		handled = append(handled, raw.Uid)
		w.advanceCursor(raw.Uid)

		msg, err := w.parse(raw, fmt.Sprintf("%s/%d/%d", w.config.Mailbox, uidValidity, raw.Uid))
		if err != nil {
			w.l.WithFields(logrus.Fields{"uid": raw.Uid, "error": err}).Warn("Could not parse mail, skipping")
			continue
		}

		w.l.WithFields(logrus.Fields{"uid": raw.Uid, "subject": mail.ShortSubject(msg.Subject), "from": msg.FromEmail}).Debug("Detected mail")
		messages = append(messages, msg)
	}

	if len(handled) == 0 {
		return nil
	}

	err = w.conn.SetFlag(handled, domain.SeenFlag, domain.FlagAdd)
	if err != nil {
		w.l.WithFields(logrus.Fields{"uids": len(handled), "error": err}).Warn("Could not mark mails as read")
	}

	if len(messages) > 0 {
		_, err = w.dispatcher.Submit(messages)
		if err != nil {
			w.l.WithFields(logrus.Fields{"mails": len(messages), "error": err}).Error("Could not submit mails")
		} else {
			w.mu.Lock()
			w.detected += len(messages)
			w.mu.Unlock()
		}
	}

	if w.archive {
		err = w.conn.Archive(handled, w.config.ArchiveFolder)
		if err != nil {
			w.l.WithFields(logrus.Fields{"folder": w.config.ArchiveFolder, "error": err}).Warn("Could not archive processed mails")
		}
	}

	w.l.WithFields(logrus.Fields{"duration": time.Since(start), "batchsize": len(batch), "submitted": len(messages)}).Info("Processed batch")
	return nil
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	w.state = Error
	w.failures++
	failures := w.failures
	w.mu.Unlock()

	w.l.WithFields(logrus.Fields{"failures": failures, "error": err}).Error("Detection failed, reconnecting")
}

// idleFailed counts a failed IDLE. Only IDLE failures lead to the polling
// fallback, connection problems are retried in the current mode.
func (w *Watcher) idleFailed() {
	w.mu.Lock()
	w.idleErrors++
	idleErrors := w.idleErrors
	fallback := w.mode == ModeIdle && idleErrors >= w.config.MaxFailures
	w.mu.Unlock()

	if fallback {
		w.fallback(fmt.Sprintf("%d consecutive IDLE failures", idleErrors))
	}
}

func (w *Watcher) idleSucceeded() {
	w.mu.Lock()
	w.idleErrors = 0
	w.mu.Unlock()
}

// fallback switches to polling for the rest of the watcher's life.
func (w *Watcher) fallback(reason string) {
	w.mu.Lock()
	switched := w.mode != ModePolling
	w.mode = ModePolling
	w.mu.Unlock()

	if switched {
		w.l.WithField("reason", reason).Warn("Falling back to polling")
	}
}

func (w *Watcher) resetFailures() {
	w.mu.Lock()
	w.failures = 0
	w.mu.Unlock()
}

func (w *Watcher) currentMode() Mode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

func (w *Watcher) advanceCursor(uid uint32) {
	w.mu.Lock()
	if uid > w.cursor {
		w.cursor = uid
	}
	w.mu.Unlock()
}

func (w *Watcher) setState(state State) {
	w.mu.Lock()
	previous := w.state
	w.state = state
	w.mu.Unlock()

	if previous != state {
		w.l.WithFields(logrus.Fields{"from": previous, "to": state}).Debug("State change")
	}
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

// sleep reports false when interrupted by stop.
func sleep(stop <-chan struct{}, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}

func sortUids(uids []uint32) {
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
}

// taken from https://github.com/golang/go/wiki/SliceTricks
func partitionUids(uids []uint32, partitionSize int) [][]uint32 {
	batches := make([][]uint32, 0, (len(uids)+partitionSize-1)/partitionSize)

	for partitionSize < len(uids) {
		uids, batches = uids[partitionSize:], append(batches, uids[0:partitionSize:partitionSize])
	}
	batches = append(batches, uids)

	return batches
}
