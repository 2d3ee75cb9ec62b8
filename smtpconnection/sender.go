// SPDX-License-Identifier: GPL-3.0-or-later
package smtpconnection

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"
	"github.com/CrawX/go-imap-assistant/mail"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/sirupsen/logrus"
)

// Sender delivers outgoing mail, one SMTP session per mail.
type Sender struct {
	server      string
	startTLS    bool
	implicitTLS bool
	user        string
	password    string
	from        string
	timeout     time.Duration

	now func() time.Time

	l *logrus.Logger
}

// NewSender creates a Sender for server. Without startTLS the connection uses
// implicit TLS. timeout bounds connecting, the greeting and every command.
func NewSender(server string, startTLS bool, user, password, from string, timeout time.Duration) *Sender {
	return &Sender{
		server:      server,
		startTLS:    startTLS,
		implicitTLS: !startTLS,
		user:        user,
		password:    password,
		from:        from,
		timeout:     timeout,
		now:         time.Now,
		l:           log.Logger(log.LOG_SMTP),
	}
}

func (s *Sender) Send(ctx context.Context, out *domain.OutgoingMail) error {
	rawMail, err := mail.Compose(s.from, out, s.now())
	if err != nil {
		return fmt.Errorf("could not compose mail: %w", err)
	}
	recipients := mail.Recipients(out)

	err = ctx.Err()
	if err != nil {
		return err
	}

	conn, err := (&net.Dialer{Timeout: s.timeout}).DialContext(ctx, "tcp", s.server)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: could not dial to smtp: %w", domain.ErrTransport, err)
	}
	defer conn.Close()

	// closing the connection aborts whatever command is waiting for the server
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	err = s.session(conn, recipients, rawMail)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	s.l.WithFields(logrus.Fields{
		"subject":    mail.ShortSubject(out.Subject),
		"recipients": len(recipients),
	}).Info("Sent mail")
	return nil
}

func (s *Sender) session(conn net.Conn, recipients []string, rawMail []byte) error {
	host, _, err := net.SplitHostPort(s.server)
	if err != nil {
		return fmt.Errorf("could not split smtp server address: %w", err)
	}

	if s.implicitTLS {
		conn = tls.Client(conn, &tls.Config{ServerName: host})
	}

	// NewClient reads the greeting before command timeouts apply
	if s.timeout > 0 {
		err = conn.SetDeadline(time.Now().Add(s.timeout))
		if err != nil {
			return fmt.Errorf("%w: could not set deadline: %w", domain.ErrTransport, err)
		}
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("%w: no greeting from smtp server: %w", domain.ErrTransport, err)
	}
	defer c.Close()
	if s.timeout > 0 {
		c.CommandTimeout = s.timeout
		c.SubmissionTimeout = s.timeout
	}

	return s.deliver(c, host, recipients, rawMail)
}

func (s *Sender) deliver(c *smtp.Client, host string, recipients []string, rawMail []byte) error {
	if s.startTLS {
		err := c.StartTLS(&tls.Config{ServerName: host})
		if err != nil {
			return fmt.Errorf("%w: could not start tls: %w", domain.ErrTransport, err)
		}
	}

	if len(s.user) > 0 {
		err := c.Auth(sasl.NewPlainClient("", s.user, s.password))
		if err != nil {
			return fmt.Errorf("%w: could not authenticate: %w", domain.ErrTransport, err)
		}
	}

	err := c.Mail(s.from, nil)
	if err != nil {
		return fmt.Errorf("%w: sender rejected: %w", domain.ErrTransport, err)
	}

	for _, r := range recipients {
		err = c.Rcpt(r)
		if err != nil {
			return fmt.Errorf("%w: recipient %s rejected: %w", domain.ErrTransport, r, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("%w: could not start data: %w", domain.ErrTransport, err)
	}
	_, err = w.Write(rawMail)
	if err != nil {
		return fmt.Errorf("%w: could not write data: %w", domain.ErrTransport, err)
	}
	err = w.Close()
	if err != nil {
		return fmt.Errorf("%w: mail rejected: %w", domain.ErrTransport, err)
	}

	err = c.Quit()
	if err != nil {
		s.l.WithError(err).Debug("Could not quit cleanly")
	}

	return nil
}
