// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/sirupsen/logrus"
)

type dbContact struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Remark    string    `db:"remark"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SaveContact inserts contact and reports false if the email is already known.
func (p *Persistence) SaveContact(contact *domain.Contact) (bool, error) {
	now := time.Now().UTC()
	result, err := p.db.Exec(
		`INSERT INTO contacts (name, email, remark, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING`,
		contact.Name, strings.ToLower(contact.Email), contact.Remark, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("could not save contact: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get num of affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	contact.Id, err = result.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("could not get contact id: %w", err)
	}
	contact.Email = strings.ToLower(contact.Email)
	contact.CreatedAt = now
	contact.UpdatedAt = now

	p.l.WithFields(logrus.Fields{"id": contact.Id, "email": contact.Email}).Info("Persisted contact")
	return true, nil
}

// SearchContacts matches keyword case-insensitively against name and email.
func (p *Persistence) SearchContacts(keyword string, limit int) ([]*domain.Contact, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(keyword))) + "%"

	dbContacts := []dbContact{}
	err := p.db.Select(
		&dbContacts,
		`SELECT id, name, email, remark, created_at, updated_at FROM contacts
		WHERE lower(name) LIKE ? ESCAPE '\' OR lower(email) LIKE ? ESCAPE '\'
		ORDER BY name, email LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	contacts := []*domain.Contact{}
	for _, c := range dbContacts {
		contacts = append(
			contacts,
			&domain.Contact{
				Id:        c.Id,
				Name:      c.Name,
				Email:     c.Email,
				Remark:    c.Remark,
				CreatedAt: c.CreatedAt,
				UpdatedAt: c.UpdatedAt,
			},
		)
	}

	p.l.WithFields(logrus.Fields{"keyword": keyword, "count": len(contacts)}).Debug("Searched contacts")
	return contacts, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
