// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector,ImapDialer
type RawImapMail struct {
	Uid          uint32
	InternalDate time.Time
	RawMail      []byte
}

type SearchCriteria int

const (
	SearchAll = SearchCriteria(iota)
	SearchUnseen
)

type FlagMode int

const (
	FlagAdd = FlagMode(iota)
	FlagRemove
)

const SeenFlag = `\Seen`

// WaitResult is the outcome of a single real-time wait.
type WaitResult int

const (
	WaitTimeout = WaitResult(iota)
	WaitSignal
	WaitStopped
)

func (w WaitResult) String() string {
	switch w {
	case WaitSignal:
		return "signal"
	case WaitStopped:
		return "stopped"
	}
	return "timeout"
}

type ImapConnector interface {
	Select(folder string) (uint32, error)
	Search(criteria SearchCriteria) ([]uint32, error)
	FetchMails(uids []uint32) ([]*RawImapMail, error)
	SetFlag(uids []uint32, flag string, mode FlagMode) error

	WaitSupported() bool
	Wait(timeout time.Duration, stop <-chan struct{}) (WaitResult, error)

	ArchiveReady() (error, error)
	Archive(uids []uint32, folder string) error

	Close() error
}

// ImapDialer opens a fresh session for every call.
type ImapDialer interface {
	Dial() (ImapConnector, error)
}
