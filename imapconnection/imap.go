// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"
	"io/ioutil"
	"net"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	move "github.com/emersion/go-imap-move"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

type Dialer struct {
	server, user, password string
	compress               bool
	timeout                time.Duration
}

// NewDialer creates a Dialer for server. timeout bounds connecting and every
// single command, zero disables it.
func NewDialer(server, user, password string, useCompress bool, timeout time.Duration) *Dialer {
	return &Dialer{
		server:   server,
		user:     user,
		password: password,
		compress: useCompress,
		timeout:  timeout,
	}
}

func (d *Dialer) Dial() (domain.ImapConnector, error) {
	return NewImapConnection(d.server, d.user, d.password, d.compress, d.timeout)
}

type ImapConnection struct {
	connection *client.Client
	mailbox    mailboxClient
	waiter     *waiter
	archiver   archiver
	timeout    time.Duration

	server         string
	idleSupported  bool
	selectedFolder string

	l *logrus.Logger
}

func NewImapConnection(server, user, password string, useCompress bool, timeout time.Duration) (*ImapConnection, error) {
	imapClient, err := client.DialWithDialerTLS(&net.Dialer{Timeout: timeout}, server, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: could not dial to imap: %w", domain.ErrTransport, err)
	}
	imapClient.Timeout = timeout

	conn := &ImapConnection{
		connection: imapClient,
		mailbox:    imapClient,
		waiter:     newWaiter(imapClient),
		timeout:    timeout,
		server:     server,
		l:          log.Logger(log.LOG_IMAP),
	}

	updates := make(chan client.Update, 16)
	imapClient.Updates = updates
	go conn.waiter.forward(updates)

	err = conn.setup(user, password, useCompress)
	if err != nil {
		conn.waiter.close()
		_ = imapClient.Logout()
		return nil, err
	}

	return conn, nil
}

func (ic *ImapConnection) setup(user, password string, useCompress bool) error {
	err := ic.connection.Login(user, password)
	if err != nil {
		return fmt.Errorf("%w: could not login to imap: %w", domain.ErrTransport, err)
	}

	baseLogger := ic.l.WithFields(logrus.Fields{"server": ic.server})
	baseLogger.Debug("Logged in to server")

	if useCompress {
		compressClient := compress.NewClient(ic.connection)
		compressSupported, err := compressClient.SupportCompress(compress.Deflate)
		if err != nil {
			return fmt.Errorf("could not check for COMPRESS support: %w", err)
		}
		if compressSupported {
			err = compressClient.Compress(compress.Deflate)
			if err != nil {
				return fmt.Errorf("could not enable compression: %w", err)
			}
			baseLogger.Debug("COMPRESS=DEFLATE enabled")
		} else {
			baseLogger.Info("COMPRESS not supported on server, continuing uncompressed")
		}
	}

	ic.idleSupported, err = ic.connection.Support("IDLE")
	if err != nil {
		return fmt.Errorf("could not check for IDLE support: %w", err)
	}
	if !ic.idleSupported {
		baseLogger.Info("IDLE not supported on server, polling only")
	}

	uidPlusClient := uidplus.NewClient(ic.connection)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		return fmt.Errorf("could not check for UIDPLUS support: %w", err)
	}

	moveClient := move.NewClient(ic.connection)
	moveSupported, err := moveClient.SupportMove()
	if err != nil {
		return fmt.Errorf("could not check for MOVE support: %w", err)
	}

	switch {
	case moveSupported:
		baseLogger.Debug("MOVE supported on server")
		ic.archiver = &moveArchiver{client: moveClient}
	case uidPlusSupported:
		baseLogger.Info("MOVE not supported on server, archiving with copy&UID EXPUNGE")
		ic.archiver = &copyArchiver{client: &copySession{
			conn:     ic.connection,
			expunger: &uidExpunger{client: &uidPlusSession{conn: ic, ext: uidPlusClient}},
		}}
	default:
		baseLogger.Info("MOVE and UIDPLUS not supported on server, archiving with copy&flag&expunge")
		ic.archiver = &copyArchiver{client: &copySession{
			conn:     ic.connection,
			expunger: &folderExpunger{client: &folderSession{conn: ic}},
		}}
	}

	return nil
}

func (ic *ImapConnection) Select(folder string) (uint32, error) {
	m, err := ic.mailbox.Select(folder, false)
	if err != nil {
		return 0, fmt.Errorf("could not select folder: %w", err)
	}

	ic.selectedFolder = folder
	ic.waiter.reset()
	return m.UidValidity, nil
}

func (ic *ImapConnection) Search(criteria domain.SearchCriteria) ([]uint32, error) {
	imapCriteria := imap.NewSearchCriteria()
	if criteria == domain.SearchUnseen {
		imapCriteria.WithoutFlags = []string{imap.SeenFlag}
	}

	ids, err := ic.mailbox.UidSearch(imapCriteria)
	if err != nil {
		return nil, fmt.Errorf("could not search folder %s: %w", ic.selectedFolder, err)
	}

	return ids, nil
}

func (ic *ImapConnection) FetchMails(uids []uint32) ([]*domain.RawImapMail, error) {
	if len(uids) == 0 {
		return []*domain.RawImapMail{}, nil
	}

	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	messages := make(chan *imap.Message, 10)
	fullBodySection := &imap.BodySectionName{
		Peek: true,
	}

	fetchItems := []imap.FetchItem{fullBodySection.FetchItem(), imap.FetchUid, imap.FetchInternalDate}
	done := make(chan error, 1)
	go func() {
		done <- ic.mailbox.UidFetch(seqset, fetchItems, messages)
	}()

	mails := []*domain.RawImapMail{}
	var readErr error
	for msg := range messages {
		if readErr != nil {
			continue
		}

		r := msg.GetBody(fullBodySection)
		if r == nil {
			ic.l.WithField("uid", msg.Uid).Warn("Server returned no body")
			continue
		}
		rawBody, err := ioutil.ReadAll(r)
		if err != nil {
			readErr = fmt.Errorf("could not read mail body: %w", err)
			continue
		}

		mails = append(
			mails,
			&domain.RawImapMail{
				Uid:          msg.Uid,
				InternalDate: msg.InternalDate,
				RawMail:      rawBody,
			},
		)
	}

	err := <-done
	if err != nil {
		return nil, fmt.Errorf("could not fetch mails: %w", err)
	}
	if readErr != nil {
		return nil, readErr
	}

	return mails, nil
}

func (ic *ImapConnection) SetFlag(uids []uint32, flag string, mode domain.FlagMode) error {
	if len(uids) == 0 {
		return nil
	}

	op := imap.FlagsOp(imap.AddFlags)
	if mode == domain.FlagRemove {
		op = imap.RemoveFlags
	}

	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := ic.mailbox.UidStore(seqset, imap.FormatFlagsOp(op, true), []interface{}{flag}, nil)
	if err != nil {
		return fmt.Errorf("could not set flag %s: %w", flag, err)
	}

	return nil
}

func (ic *ImapConnection) WaitSupported() bool {
	return ic.idleSupported
}

// Wait idles for at most timeout. The command timeout is stretched by timeout
// for the IDLE command, so leaving IDLE stays bounded as well.
func (ic *ImapConnection) Wait(timeout time.Duration, stop <-chan struct{}) (domain.WaitResult, error) {
	if ic.timeout > 0 {
		ic.connection.Timeout = timeout + ic.timeout
		defer func() {
			ic.connection.Timeout = ic.timeout
		}()
	}
	return ic.waiter.wait(timeout, stop)
}

func (ic *ImapConnection) ArchiveReady() (error, error) {
	return ic.archiver.archiveReady()
}

func (ic *ImapConnection) Archive(uids []uint32, folder string) error {
	if len(uids) == 0 {
		return nil
	}
	return ic.archiver.archive(uids, folder)
}

func (ic *ImapConnection) Close() error {
	ic.waiter.close()
	err := ic.connection.Logout()
	if err != nil {
		return fmt.Errorf("could not logout: %w", err)
	}
	return nil
}

func (ic *ImapConnection) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := ic.connection.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not set deleted flag: %w", err)
	}

	return seqset, nil
}

type uidPlusSession struct {
	conn *ImapConnection
	ext  *uidplus.Client
}

func (s *uidPlusSession) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	return s.conn.flagDeleted(uids)
}

func (s *uidPlusSession) UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error {
	return s.ext.UidExpunge(seqSet, ch)
}

type folderSession struct {
	conn *ImapConnection
}

func (s *folderSession) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	return s.conn.flagDeleted(uids)
}

func (s *folderSession) Expunge(ch chan uint32) error {
	return s.conn.connection.Expunge(ch)
}

func (s *folderSession) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return s.conn.mailbox.UidSearch(criteria)
}

type copySession struct {
	expunger
	conn *client.Client
}

func (s *copySession) UidCopy(seqset *imap.SeqSet, dest string) error {
	return s.conn.UidCopy(seqset, dest)
}
