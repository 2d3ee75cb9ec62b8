// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

//go:generate mockgen -destination=interfaces_mocks_test.go -package=imapconnection -source interfaces.go

// Unexported session capabilities in one file; source-mode mockgen cannot
// resolve embedded interfaces spread over several files.

// mailboxClient is the part of the imap client used on the selected mailbox.
type mailboxClient interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
}

type idleClient interface {
	Idle(stop <-chan struct{}, opts *client.IdleOptions) error
}

type archiver interface {
	archive(uids []uint32, folder string) error
	archiveReady() (error, error)
}

type expunger interface {
	expunge(uids []uint32) error
	expungeReady() (error, error)
}

type uidMover interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

type deletedFlagger interface {
	flagDeleted(uids []uint32) (*imap.SeqSet, error)
}

type uidExpungeClient interface {
	deletedFlagger
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

type folderExpungeClient interface {
	deletedFlagger
	Expunge(ch chan uint32) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
}

type copyExpungeClient interface {
	expunger
	UidCopy(seqset *imap.SeqSet, dest string) error
}
