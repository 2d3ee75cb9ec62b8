// SPDX-License-Identifier: GPL-3.0-or-later
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/CrawX/go-imap-assistant/domain"
)

const (
	contactSearchLimit = 20
	maxNameLength      = 100
	maxRemarkLength    = 500
)

var searchContactSpec = domain.ToolSpec{
	Name:        "search-contact",
	Description: "Search contacts whose name or email contains the keyword.",
	Parameters: schema(`{
		"type": "object",
		"properties": {
			"keyword": {"type": "string"}
		},
		"required": ["keyword"]
	}`),
}

var addContactSpec = domain.ToolSpec{
	Name:        "add-contact",
	Description: `Add contacts. Every entry has the form "name,email" or "name,email,remark".`,
	Parameters: schema(`{
		"type": "object",
		"properties": {
			"contacts": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["contacts"]
	}`),
}

type searchContactArgs struct {
	Keyword string `json:"keyword"`
}

func searchContact(contacts domain.ContactStore) handler {
	return func(_ context.Context, raw json.RawMessage) (*domain.ToolResult, error) {
		args := &searchContactArgs{}
		err := decodeArgs(searchContactSpec.Name, raw, args)
		if err != nil {
			return nil, err
		}

		if len(strings.TrimSpace(args.Keyword)) == 0 {
			return failed("keyword must not be empty"), nil
		}

		found, err := contacts.SearchContacts(args.Keyword, contactSearchLimit)
		if err != nil {
			return nil, fmt.Errorf("%w: could not search contacts: %w", domain.ErrToolExecution, err)
		}

		data := make([]map[string]string, 0, len(found))
		for _, c := range found {
			data = append(data, map[string]string{
				"name":   c.Name,
				"email":  c.Email,
				"remark": c.Remark,
			})
		}

		return succeeded(data, "found %d contacts", len(found)), nil
	}
}

type addContactArgs struct {
	Contacts []string `json:"contacts"`
}

type addContactResult struct {
	Entry   string `json:"entry"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func addContact(contacts domain.ContactStore) handler {
	return func(_ context.Context, raw json.RawMessage) (*domain.ToolResult, error) {
		args := &addContactArgs{}
		err := decodeArgs(addContactSpec.Name, raw, args)
		if err != nil {
			return nil, err
		}

		if len(args.Contacts) == 0 {
			return failed("no contacts given"), nil
		}

		results := []addContactResult{}
		added := 0
		for _, entry := range args.Contacts {
			contact, err := parseContact(entry)
			if err != nil {
				results = append(results, addContactResult{entry, false, err.Error()})
				continue
			}

			created, err := contacts.SaveContact(contact)
			if err != nil {
				return nil, fmt.Errorf("%w: could not save contact: %w", domain.ErrToolExecution, err)
			}
			if !created {
				results = append(results, addContactResult{entry, false, "a contact with email " + contact.Email + " already exists"})
				continue
			}

			added++
			results = append(results, addContactResult{entry, true, "added"})
		}

		return &domain.ToolResult{
			Success: added > 0,
			Message: fmt.Sprintf("added %d of %d contacts", added, len(args.Contacts)),
			Data:    results,
		}, nil
	}
}

func parseContact(entry string) (*domain.Contact, error) {
	parts := strings.SplitN(entry, ",", 3)
	if len(parts) < 2 {
		return nil, fmt.Errorf("expected name,email[,remark]")
	}

	name := strings.TrimSpace(parts[0])
	if len(name) == 0 {
		return nil, fmt.Errorf("name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("name is longer than %d characters", maxNameLength)
	}

	addresses, err := parseAddresses([]string{parts[1]})
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, fmt.Errorf("email must not be empty")
	}

	remark := ""
	if len(parts) == 3 {
		remark = strings.TrimSpace(parts[2])
	}
	if utf8.RuneCountInString(remark) > maxRemarkLength {
		return nil, fmt.Errorf("remark is longer than %d characters", maxRemarkLength)
	}

	return &domain.Contact{
		Name:   name,
		Email:  addresses[0],
		Remark: remark,
	}, nil
}
