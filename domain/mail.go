// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mail.go -package=mocks . MailSender
type BodyKind string

const (
	BodyPlain = BodyKind("plain")
	BodyRich  = BodyKind("html")
)

type Attachment struct {
	Filename    string
	ContentType string
	Size        int
}

// IncomingMessage is never mutated after parsing.
type IncomingMessage struct {
	Id        string
	Uid       uint32
	MessageId string

	Subject    string
	FromEmail  string
	FromName   string
	ToEmail    string
	Date       time.Time
	Body       string
	BodyKind   BodyKind
	Cc         []string
	Attachment []Attachment
}

type OutgoingMail struct {
	FromName string
	To       []string
	Cc       []string
	Bcc      []string
	Subject  string
	Body     string
	BodyKind BodyKind

	InReplyTo string
}

type MailSender interface {
	Send(ctx context.Context, mail *OutgoingMail) error
}
