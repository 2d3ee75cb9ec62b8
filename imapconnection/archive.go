// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"errors"
	"fmt"

	"github.com/emersion/go-imap"
)

var ErrDeletedMailsPresent = errors.New("folder has previous mails with deleted flag set")

// moveArchiver relies on the MOVE extension and is always ready.
type moveArchiver struct {
	client uidMover
}

func (m *moveArchiver) archive(uids []uint32, folder string) error {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := m.client.UidMove(seqset, folder)
	if err != nil {
		return fmt.Errorf("could not move mails to %s: %w", folder, err)
	}
	return nil
}

func (m *moveArchiver) archiveReady() (error, error) {
	return nil, nil
}

// copyArchiver copies and then expunges the originals.
type copyArchiver struct {
	client copyExpungeClient
}

func (c *copyArchiver) archive(uids []uint32, folder string) error {
	notReadyReason, err := c.archiveReady()
	if err != nil {
		return fmt.Errorf("could not check archive readiness: %w", err)
	}
	if notReadyReason != nil {
		return fmt.Errorf("folder is not ready for copy&expunge archiving: %w", notReadyReason)
	}

	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err = c.client.UidCopy(seqset, folder)
	if err != nil {
		return fmt.Errorf("could not copy mails to %s: %w", folder, err)
	}

	err = c.client.expunge(uids)
	if err != nil {
		return fmt.Errorf("could not expunge copied mails: %w", err)
	}

	return nil
}

func (c *copyArchiver) archiveReady() (error, error) {
	return c.client.expungeReady()
}

// uidExpunger removes exactly the given uids with UIDPLUS.
type uidExpunger struct {
	client uidExpungeClient
}

func (u *uidExpunger) expunge(uids []uint32) error {
	seqset, err := u.client.flagDeleted(uids)
	if err != nil {
		return err
	}

	removed, err := collectExpunged(func(ch chan uint32) error {
		return u.client.UidExpunge(seqset, ch)
	})
	if err != nil {
		return err
	}

	return checkExpunged(len(uids), removed)
}

func (u *uidExpunger) expungeReady() (error, error) {
	return nil, nil
}

// folderExpunger expunges the whole folder, so it refuses to run while mails
// it did not flag carry \Deleted.
type folderExpunger struct {
	client folderExpungeClient
}

func (f *folderExpunger) expunge(uids []uint32) error {
	notReadyReason, err := f.expungeReady()
	if err != nil {
		return fmt.Errorf("could not check expunge readiness: %w", err)
	}
	if notReadyReason != nil {
		return fmt.Errorf("folder is not ready for expunge: %w", notReadyReason)
	}

	_, err = f.client.flagDeleted(uids)
	if err != nil {
		return err
	}

	removed, err := collectExpunged(f.client.Expunge)
	if err != nil {
		return err
	}

	return checkExpunged(len(uids), removed)
}

func (f *folderExpunger) expungeReady() (error, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	ids, err := f.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search for deleted mails: %w", err)
	}

	if len(ids) > 0 {
		return ErrDeletedMailsPresent, nil
	}
	return nil, nil
}

func collectExpunged(expunge func(ch chan uint32) error) (int, error) {
	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- expunge(out)
	}()

	count := 0
	for range out {
		count++
	}

	if err := <-done; err != nil {
		return count, fmt.Errorf("could not expunge mails: %w", err)
	}
	return count, nil
}

func checkExpunged(expected, got int) error {
	if expected != got {
		return fmt.Errorf("unexpected number of expunges, expected %d got %d", expected, got)
	}
	return nil
}
