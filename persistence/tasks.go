// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/sirupsen/logrus"
)

type dbTaskRecord struct {
	MessageId  string    `db:"message_id"`
	Subject    string    `db:"subject"`
	Sender     string    `db:"sender"`
	Status     string    `db:"status"`
	Outcome    string    `db:"outcome"`
	Replied    bool      `db:"replied"`
	LastError  string    `db:"last_error"`
	Iterations int       `db:"iterations"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// FindTaskRecord returns nil without error for unknown messages.
func (p *Persistence) FindTaskRecord(messageId string) (*domain.TaskRecord, error) {
	r := dbTaskRecord{}
	err := p.db.Get(
		&r,
		`SELECT message_id, subject, sender, status, outcome, replied, last_error, iterations, updated_at
		FROM reply_tasks WHERE message_id = ?`,
		messageId,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	return &domain.TaskRecord{
		MessageId:  r.MessageId,
		Subject:    r.Subject,
		Sender:     r.Sender,
		Status:     domain.TaskStatus(r.Status),
		Outcome:    domain.TaskOutcome(r.Outcome),
		Replied:    r.Replied,
		LastError:  r.LastError,
		Iterations: r.Iterations,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}

// SaveTaskRecord upserts the record. A stored replied flag is never cleared.
func (p *Persistence) SaveTaskRecord(record *domain.TaskRecord) error {
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}

	_, err := p.db.NamedExec(
		`INSERT INTO reply_tasks (message_id, subject, sender, status, outcome, replied, last_error, iterations, updated_at)
		VALUES (:message_id, :subject, :sender, :status, :outcome, :replied, :last_error, :iterations, :updated_at)
		ON CONFLICT(message_id) DO UPDATE SET
			subject = excluded.subject,
			sender = excluded.sender,
			status = excluded.status,
			outcome = excluded.outcome,
			replied = reply_tasks.replied OR excluded.replied,
			last_error = excluded.last_error,
			iterations = excluded.iterations,
			updated_at = excluded.updated_at`,
		&dbTaskRecord{
			MessageId:  record.MessageId,
			Subject:    record.Subject,
			Sender:     record.Sender,
			Status:     string(record.Status),
			Outcome:    string(record.Outcome),
			Replied:    record.Replied,
			LastError:  record.LastError,
			Iterations: record.Iterations,
			UpdatedAt:  record.UpdatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("could not save task record: %w", err)
	}

	p.l.WithFields(logrus.Fields{
		"messageId": record.MessageId,
		"status":    record.Status,
		"replied":   record.Replied,
	}).Debug("Persisted task record")
	return nil
}
