// SPDX-License-Identifier: GPL-3.0-or-later
package smtpconnection

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/emersion/go-smtp"
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
	os.Exit(m.Run())
}

type delivery struct {
	from       string
	recipients []string
	data       string
}

type recordingBackend struct {
	mu         sync.Mutex
	deliveries []delivery
	rejectRcpt string
}

func (b *recordingBackend) Login(_ *smtp.ConnectionState, username, password string) (smtp.Session, error) {
	if username != "assistant@example.org" || password != "secret" {
		return nil, errors.New("invalid credentials")
	}
	return &recordingSession{backend: b}, nil
}

func (b *recordingBackend) AnonymousLogin(_ *smtp.ConnectionState) (smtp.Session, error) {
	return nil, smtp.ErrAuthRequired
}

func (b *recordingBackend) all() []delivery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]delivery{}, b.deliveries...)
}

type recordingSession struct {
	backend *recordingBackend
	current delivery
}

func (s *recordingSession) Mail(from string, _ smtp.MailOptions) error {
	s.current.from = from
	return nil
}

func (s *recordingSession) Rcpt(to string) error {
	if to == s.backend.rejectRcpt {
		return &smtp.SMTPError{Code: 550, Message: "no such user"}
	}
	s.current.recipients = append(s.current.recipients, to)
	return nil
}

func (s *recordingSession) Data(r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	s.current.data = string(data)

	s.backend.mu.Lock()
	s.backend.deliveries = append(s.backend.deliveries, s.current)
	s.backend.mu.Unlock()
	return nil
}

func (s *recordingSession) Reset() {
	s.current = delivery{}
}

func (s *recordingSession) Logout() error {
	return nil
}

func startServer(t *testing.T, backend *recordingBackend) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := smtp.NewServer(backend)
	server.Domain = "localhost"
	server.AllowInsecureAuth = true
	server.ErrorLog = nullLogger()
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(func() {
		_ = server.Close()
	})

	return listener.Addr().String()
}

func testSender(server, password string) *Sender {
	s := NewSender(server, false, "assistant@example.org", password, "assistant@example.org", time.Second)
	s.implicitTLS = false
	s.now = func() time.Time { return time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC) }
	s.l = nullLogger()
	return s
}

func TestSender_Send(t *testing.T) {
	backend := &recordingBackend{}
	server := startServer(t, backend)
	sender := testSender(server, "secret")

	err := sender.Send(context.Background(), &domain.OutgoingMail{
		FromName:  "Email Assistant",
		To:        []string{"master@example.org"},
		Cc:        []string{"colleague@example.org"},
		Bcc:       []string{"hidden@example.org"},
		Subject:   "回复:Translate this",
		Body:      "你好",
		InReplyTo: "plain-1@example.org",
	})
	require.NoError(t, err)

	deliveries := backend.all()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "assistant@example.org", deliveries[0].from)
	assert.Equal(t, []string{"master@example.org", "colleague@example.org", "hidden@example.org"}, deliveries[0].recipients)
	assert.Contains(t, deliveries[0].data, "In-Reply-To: <plain-1@example.org>")
	assert.NotContains(t, deliveries[0].data, "hidden@example.org")
}

func TestSender_SendAuthFails(t *testing.T) {
	backend := &recordingBackend{}
	server := startServer(t, backend)
	sender := testSender(server, "wrong")

	err := sender.Send(context.Background(), &domain.OutgoingMail{
		To:      []string{"master@example.org"},
		Subject: "x",
	})
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Empty(t, backend.all())
}

func TestSender_SendRecipientRejected(t *testing.T) {
	backend := &recordingBackend{rejectRcpt: "nobody@example.org"}
	server := startServer(t, backend)
	sender := testSender(server, "secret")

	err := sender.Send(context.Background(), &domain.OutgoingMail{
		To:      []string{"master@example.org", "nobody@example.org"},
		Subject: "x",
	})
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "nobody@example.org")
	assert.Empty(t, backend.all())
}

func TestSender_SendWithoutRecipients(t *testing.T) {
	sender := testSender("127.0.0.1:1", "secret")

	err := sender.Send(context.Background(), &domain.OutgoingMail{Subject: "x"})
	assert.EqualError(t, err, "could not compose mail: mail has no recipients")
}

func TestSender_SendCancelled(t *testing.T) {
	sender := testSender("127.0.0.1:1", "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, &domain.OutgoingMail{To: []string{"master@example.org"}, Subject: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSender_DialFails(t *testing.T) {
	sender := testSender("127.0.0.1:1", "secret")

	err := sender.Send(context.Background(), &domain.OutgoingMail{To: []string{"master@example.org"}, Subject: "x"})
	assert.ErrorIs(t, err, domain.ErrTransport)
}

// silentServer accepts connections and never sends a greeting.
func silentServer(t *testing.T) string {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	conns := []net.Conn{}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = listener.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	return listener.Addr().String()
}

func TestSender_SilentServer(t *testing.T) {
	server := silentServer(t)

	tests := []struct {
		name    string
		timeout time.Duration
		ctx     func() (context.Context, context.CancelFunc)
		err     error
	}{
		{"send timeout", 100 * time.Millisecond, func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}, domain.ErrTransport},
		{"context deadline", time.Minute, func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 100*time.Millisecond)
		}, context.DeadlineExceeded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender := testSender(server, "secret")
			sender.timeout = tc.timeout
			ctx, cancel := tc.ctx()
			defer cancel()

			done := make(chan error, 1)
			go func() {
				done <- sender.Send(ctx, &domain.OutgoingMail{To: []string{"master@example.org"}, Subject: "x"})
			}()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, tc.err)
			case <-time.After(5 * time.Second):
				assert.Fail(t, "Send still blocked against a server that never greets")
			}
		})
	}
}
