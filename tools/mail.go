// SPDX-License-Identifier: GPL-3.0-or-later
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/emersion/go-message/mail"
)

var sendReplySpec = domain.ToolSpec{
	Name:        domain.ToolSendReply,
	Description: "Send an email. Use it to answer the user or to mail other recipients on their behalf.",
	Parameters: schema(`{
		"type": "object",
		"properties": {
			"to_emails": {"type": "array", "items": {"type": "string"}, "description": "recipient addresses"},
			"subject": {"type": "string"},
			"content": {"type": "string", "description": "mail body"},
			"content_type": {"type": "string", "enum": ["plain", "html"], "description": "defaults to plain"},
			"cc": {"type": "array", "items": {"type": "string"}},
			"bcc": {"type": "array", "items": {"type": "string"}},
			"sender_name": {"type": "string", "description": "display name of the sender"}
		},
		"required": ["to_emails", "subject", "content"]
	}`),
}

type sendReplyArgs struct {
	ToEmails    []string `json:"to_emails"`
	Subject     string   `json:"subject"`
	Content     string   `json:"content"`
	ContentType string   `json:"content_type"`
	Cc          []string `json:"cc"`
	Bcc         []string `json:"bcc"`
	SenderName  string   `json:"sender_name"`
}

func sendReply(sender domain.MailSender, defaultSenderName string) handler {
	return func(ctx context.Context, raw json.RawMessage) (*domain.ToolResult, error) {
		args := &sendReplyArgs{}
		err := decodeArgs(domain.ToolSendReply, raw, args)
		if err != nil {
			return nil, err
		}

		if len(strings.TrimSpace(args.Subject)) == 0 {
			return failed("subject must not be empty"), nil
		}

		out := &domain.OutgoingMail{
			FromName: defaultSenderName,
			Subject:  args.Subject,
			Body:     args.Content,
			BodyKind: domain.BodyPlain,
		}
		if len(args.SenderName) > 0 {
			out.FromName = args.SenderName
		}
		switch strings.ToLower(args.ContentType) {
		case "", "plain":
		case "html":
			out.BodyKind = domain.BodyRich
		default:
			return failed("unsupported content_type %s, use plain or html", args.ContentType), nil
		}

		for _, list := range []struct {
			in  []string
			out *[]string
		}{{args.ToEmails, &out.To}, {args.Cc, &out.Cc}, {args.Bcc, &out.Bcc}} {
			*list.out, err = parseAddresses(list.in)
			if err != nil {
				return failed("%s", err), nil
			}
		}

		if len(out.To) == 0 {
			return failed("at least one recipient is required"), nil
		}

		err = sender.Send(ctx, out)
		if err != nil {
			return failed("could not send mail: %s", err), nil
		}

		return succeeded(
			map[string]interface{}{"to_emails": out.To, "subject": out.Subject},
			"mail sent to %s", strings.Join(out.To, ", "),
		), nil
	}
}

func parseAddresses(addresses []string) ([]string, error) {
	parsed := []string{}
	for _, a := range addresses {
		if len(strings.TrimSpace(a)) == 0 {
			continue
		}
		address, err := mail.ParseAddress(a)
		if err != nil {
			return nil, fmt.Errorf("invalid email address %q", a)
		}
		parsed = append(parsed, strings.ToLower(address.Address))
	}
	return parsed, nil
}
