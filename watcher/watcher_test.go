// SPDX-License-Identifier: GPL-3.0-or-later
package watcher

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nullLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func TestMain(m *testing.M) {
	log.Discard()
	minRetryDelay = time.Millisecond
	os.Exit(m.Run())
}

// fakeMailbox is a single imap mailbox shared by all sessions dialed from it.
type fakeMailbox struct {
	mu sync.Mutex

	uidValidity   uint32
	mails         map[uint32][]byte
	seen          map[uint32]bool
	archived      []uint32
	waitSupported bool
	waitErr       error
	signal        chan struct{}

	dials     int
	dialErrs  []error
	open      int
	maxOpen   int
	waitCalls int
}

func newFakeMailbox() *fakeMailbox {
	return &fakeMailbox{
		uidValidity:   1,
		mails:         map[uint32][]byte{},
		seen:          map[uint32]bool{},
		waitSupported: true,
		signal:        make(chan struct{}, 1),
	}
}

// deliver adds an unread mail and notifies idling sessions.
func (f *fakeMailbox) deliver(uid uint32, subject string) {
	f.mu.Lock()
	f.mails[uid] = []byte(subject)
	f.mu.Unlock()

	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *fakeMailbox) isSeen(uid uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[uid]
}

func (f *fakeMailbox) Dial() (domain.ImapConnector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dials++
	if len(f.dialErrs) > 0 {
		err := f.dialErrs[0]
		f.dialErrs = f.dialErrs[1:]
		return nil, err
	}

	f.open++
	if f.open > f.maxOpen {
		f.maxOpen = f.open
	}
	return &fakeSession{f}, nil
}

type fakeSession struct {
	*fakeMailbox
}

func (s *fakeSession) Select(string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uidValidity, nil
}

func (s *fakeSession) Search(criteria domain.SearchCriteria) ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uids := []uint32{}
	for uid := range s.mails {
		if criteria == domain.SearchUnseen && s.seen[uid] {
			continue
		}
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] > uids[j] })
	return uids, nil
}

func (s *fakeSession) FetchMails(uids []uint32) ([]*domain.RawImapMail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mails := []*domain.RawImapMail{}
	for _, uid := range uids {
		if raw, ok := s.mails[uid]; ok {
			mails = append(mails, &domain.RawImapMail{Uid: uid, RawMail: raw})
		}
	}
	return mails, nil
}

func (s *fakeSession) SetFlag(uids []uint32, flag string, mode domain.FlagMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, uid := range uids {
		s.seen[uid] = mode == domain.FlagAdd
	}
	return nil
}

func (s *fakeSession) WaitSupported() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waitSupported
}

func (s *fakeSession) Wait(timeout time.Duration, stop <-chan struct{}) (domain.WaitResult, error) {
	s.mu.Lock()
	s.waitCalls++
	err := s.waitErr
	s.mu.Unlock()
	if err != nil {
		return domain.WaitTimeout, err
	}

	select {
	case <-s.signal:
		return domain.WaitSignal, nil
	case <-stop:
		return domain.WaitStopped, nil
	case <-time.After(timeout):
		return domain.WaitTimeout, nil
	}
}

func (s *fakeSession) ArchiveReady() (error, error) {
	return nil, nil
}

func (s *fakeSession) Archive(uids []uint32, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archived = append(s.archived, uids...)
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open--
	return nil
}

type fakeDispatcher struct {
	submitted chan *domain.IncomingMessage
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{submitted: make(chan *domain.IncomingMessage, 100)}
}

func (f *fakeDispatcher) Submit(batch []*domain.IncomingMessage) ([]<-chan domain.Completion, error) {
	for _, msg := range batch {
		f.submitted <- msg
	}
	return nil, nil
}

func (f *fakeDispatcher) next(t *testing.T, within time.Duration) *domain.IncomingMessage {
	select {
	case msg := <-f.submitted:
		return msg
	case <-time.After(within):
		require.Fail(t, "no mail submitted in time")
		return nil
	}
}

func (f *fakeDispatcher) none(t *testing.T, within time.Duration) {
	select {
	case msg := <-f.submitted:
		assert.Failf(t, "unexpected submission", "uid %d", msg.Uid)
	case <-time.After(within):
	}
}

func parseSubject(raw *domain.RawImapMail, fallbackId string) (*domain.IncomingMessage, error) {
	if string(raw.RawMail) == "broken" {
		return nil, errors.New("broken mail")
	}
	return &domain.IncomingMessage{Id: fallbackId, Uid: raw.Uid, Subject: string(raw.RawMail)}, nil
}

func testWatcher(t *testing.T, mailbox *fakeMailbox, dispatcher domain.Dispatcher, configFunc ...ConfigFunc) *Watcher {
	configFunc = append([]ConfigFunc{
		PollInterval(20 * time.Millisecond),
		Heartbeat(time.Second),
		RetryDelay(time.Millisecond),
	}, configFunc...)

	w, err := NewWatcher(mailbox, dispatcher, "INBOX", configFunc...)
	require.NoError(t, err)
	w.parse = parseSubject
	w.l = nullLogger()
	t.Cleanup(func() {
		assert.NoError(t, w.Stop(time.Second))
	})
	return w
}

func waitForState(t *testing.T, w *Watcher, state State) {
	deadline := time.After(time.Second)
	for w.Stats().State != state {
		select {
		case <-deadline:
			require.Failf(t, "state not reached", "expected %v, is %v", state, w.Stats().State)
		case <-time.After(time.Millisecond):
		}
	}
}

func TestDedupCache_Bound(t *testing.T) {
	capacity := 5
	d := NewDedupCache(capacity)

	for uid := uint32(1); uid <= uint32(2*capacity+1); uid++ {
		assert.True(t, d.Add(uid))
		assert.LessOrEqual(t, d.Len(), 2*capacity)
	}

	assert.Equal(t, capacity+1, d.Len())
	for uid := uint32(1); uid <= uint32(capacity); uid++ {
		assert.False(t, d.Contains(uid), "uid %d should be evicted", uid)
	}
	for uid := uint32(capacity + 1); uid <= uint32(2*capacity+1); uid++ {
		assert.True(t, d.Contains(uid), "uid %d should be kept", uid)
	}
}

func TestDedupCache_AddKnownAndReset(t *testing.T) {
	d := NewDedupCache(2)

	assert.True(t, d.Add(7))
	assert.False(t, d.Add(7))
	assert.Equal(t, 1, d.Len())

	d.Reset()
	assert.Equal(t, 0, d.Len())
	assert.False(t, d.Contains(7))
	assert.True(t, d.Add(7))
}

func TestNewWatcher_Configuration(t *testing.T) {
	tests := []struct {
		name       string
		mailbox    string
		configFunc []ConfigFunc
		err        string
	}{
		{"defaults", "INBOX", nil, ""},
		{"empty mailbox", "", nil, "mailbox cannot be empty"},
		{"zero poll interval", "INBOX", []ConfigFunc{PollInterval(0)}, "error applying configuration: PollInterval must be positive, got 0s"},
		{"zero heartbeat", "INBOX", []ConfigFunc{Heartbeat(0)}, "error applying configuration: Heartbeat must be positive, got 0s"},
		{"no failures", "INBOX", []ConfigFunc{MaxFailures(0)}, "error applying configuration: MaxFailures must be at least 1, got 0"},
		{"no dedup", "INBOX", []ConfigFunc{DedupCapacity(0)}, "error applying configuration: DedupCapacity must be at least 1, got 0"},
		{"negative sync", "INBOX", []ConfigFunc{InitialSync(-1)}, "error applying configuration: InitialSync cannot be negative"},
		{"archive into inbox", "INBOX", []ConfigFunc{Archive("INBOX")}, "error applying configuration: ArchiveFolder cannot be the watched mailbox"},
		{"archive", "INBOX", []ConfigFunc{Archive("Processed")}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWatcher(newFakeMailbox(), newFakeDispatcher(), tc.mailbox, tc.configFunc...)
			if len(tc.err) > 0 {
				assert.EqualError(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Stopped, w.Stats().State)
		})
	}
}

func TestWatcher_InitialSyncAndIdle(t *testing.T) {
	mailbox := newFakeMailbox()
	for uid := uint32(1); uid <= 4; uid++ {
		mailbox.deliver(uid, fmt.Sprintf("old %d", uid))
	}
	<-mailbox.signal

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, InitialSync(3))
	require.NoError(t, w.Start())

	// uid 1 is older than the sync window and still unread
	msg := dispatcher.next(t, time.Second)
	assert.Equal(t, uint32(1), msg.Uid)
	assert.Equal(t, "INBOX/1/1", msg.Id)

	waitForState(t, w, Waiting)
	dispatcher.none(t, 20*time.Millisecond)

	mailbox.deliver(5, "Translate this")
	msg = dispatcher.next(t, time.Second)
	assert.Equal(t, uint32(5), msg.Uid)
	assert.Equal(t, "Translate this", msg.Subject)

	waitForState(t, w, Waiting)
	assert.True(t, mailbox.isSeen(5))
	assert.False(t, mailbox.isSeen(2))

	stats := w.Stats()
	assert.Equal(t, ModeIdle, stats.Mode)
	assert.Equal(t, uint32(5), stats.Cursor)
	assert.Equal(t, 5, stats.DedupSize)
	assert.Equal(t, 2, stats.Detected)
}

func TestWatcher_IdleHandshakeFailsFallsBackToPolling(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.waitErr = errors.New("IDLE rejected")

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, MaxFailures(1))
	require.NoError(t, w.Start())

	waitForState(t, w, Polling)
	assert.Equal(t, ModePolling, w.Stats().Mode)

	mailbox.deliver(10, "hello")
	msg := dispatcher.next(t, 200*time.Millisecond)
	assert.Equal(t, uint32(10), msg.Uid)

	mailbox.mu.Lock()
	defer mailbox.mu.Unlock()
	assert.Equal(t, 1, mailbox.waitCalls)
	assert.Equal(t, 2, mailbox.dials)
	assert.Equal(t, 1, mailbox.maxOpen)
}

func TestWatcher_IdleUnsupported(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.waitSupported = false

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher)
	require.NoError(t, w.Start())

	waitForState(t, w, Polling)
	mailbox.deliver(3, "polled")
	assert.Equal(t, uint32(3), dispatcher.next(t, 200*time.Millisecond).Uid)
	assert.Equal(t, ModePolling, w.Stats().Mode)
}

func TestWatcher_ReconnectsAfterDialFailures(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.dialErrs = []error{errors.New("connection refused"), errors.New("auth failed")}

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, ForcePolling())
	require.NoError(t, w.Start())

	waitForState(t, w, Polling)
	mailbox.deliver(1, "after outage")
	assert.Equal(t, uint32(1), dispatcher.next(t, 200*time.Millisecond).Uid)

	mailbox.mu.Lock()
	assert.Equal(t, 3, mailbox.dials)
	mailbox.mu.Unlock()
	assert.Eventually(t, func() bool {
		return w.Stats().Failures == 0
	}, time.Second, time.Millisecond)
}

func TestWatcher_ConnectionFailuresKeepIdle(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.dialErrs = []error{errors.New("connection refused"), errors.New("connection refused"), errors.New("connection refused")}

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, MaxFailures(1))
	require.NoError(t, w.Start())

	waitForState(t, w, Waiting)
	assert.Equal(t, ModeIdle, w.Stats().Mode)
	assert.Equal(t, 0, w.Stats().IdleErrors)

	mailbox.deliver(2, "after outage")
	assert.Equal(t, uint32(2), dispatcher.next(t, time.Second).Uid)
	assert.Equal(t, ModeIdle, w.Stats().Mode)

	mailbox.mu.Lock()
	defer mailbox.mu.Unlock()
	assert.Equal(t, 4, mailbox.dials)
}

func TestWatcher_UidValidityChangeResets(t *testing.T) {
	mailbox := newFakeMailbox()
	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, ForcePolling(), InitialSync(0))
	require.NoError(t, w.Start())

	mailbox.deliver(1, "first")
	assert.Equal(t, uint32(1), dispatcher.next(t, time.Second).Uid)
	require.NoError(t, w.Stop(time.Second))

	// the server renumbered the mailbox, uid 1 is a different mail now
	mailbox.mu.Lock()
	mailbox.uidValidity = 2
	mailbox.mails = map[uint32][]byte{}
	mailbox.seen = map[uint32]bool{}
	mailbox.mu.Unlock()
	mailbox.deliver(1, "renumbered")

	require.NoError(t, w.Start())
	msg := dispatcher.next(t, time.Second)
	assert.Equal(t, "renumbered", msg.Subject)
	assert.Equal(t, "INBOX/2/1", msg.Id)
	assert.Equal(t, uint32(2), w.Stats().UidValidity)
}

func TestWatcher_SkipsUnparsableMail(t *testing.T) {
	mailbox := newFakeMailbox()
	mailbox.deliver(1, "broken")
	mailbox.deliver(2, "fine")
	<-mailbox.signal

	dispatcher := newFakeDispatcher()
	w := testWatcher(t, mailbox, dispatcher, ForcePolling(), InitialSync(0), Archive("Processed"))
	require.NoError(t, w.Start())

	assert.Equal(t, uint32(2), dispatcher.next(t, time.Second).Uid)
	waitForState(t, w, Polling)
	dispatcher.none(t, 50*time.Millisecond)

	assert.True(t, mailbox.isSeen(1))
	assert.True(t, mailbox.isSeen(2))
	mailbox.mu.Lock()
	assert.Equal(t, []uint32{1, 2}, mailbox.archived)
	mailbox.mu.Unlock()
}

func TestWatcher_StartStop(t *testing.T) {
	mailbox := newFakeMailbox()
	w := testWatcher(t, mailbox, newFakeDispatcher())

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
	waitForState(t, w, Waiting)

	require.NoError(t, w.Stop(time.Second))
	assert.Equal(t, Stopped, w.Stats().State)
	assert.NoError(t, w.Stop(time.Second))

	mailbox.mu.Lock()
	assert.Equal(t, 0, mailbox.open)
	mailbox.mu.Unlock()
}

func TestPartitionUids(t *testing.T) {
	tests := []struct {
		uids    []uint32
		size    int
		batches [][]uint32
	}{
		{[]uint32{1, 2, 3}, 2, [][]uint32{{1, 2}, {3}}},
		{[]uint32{1, 2}, 2, [][]uint32{{1, 2}}},
		{[]uint32{}, 2, [][]uint32{{}}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.batches, partitionUids(tc.uids, tc.size))
	}
}
