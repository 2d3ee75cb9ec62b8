// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	stdmail "net/mail"
	"strings"

	"github.com/CrawX/go-imap-assistant/domain"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

var ErrNoIdHeaders = errors.New("Received and Message-Id header not found")

// MailHeaderInfos returns the decoded subject and a hash identifying the mail
// independently of its folder and uid.
func MailHeaderInfos(rawMail []byte) (string, string, error) {
	msg, err := stdmail.ReadMessage(bytes.NewReader(rawMail))
	if err != nil {
		return "", "", fmt.Errorf("could not parse mail: %w", err)
	}

	messageIdHeader := msg.Header["Message-Id"]
	receivedHeader := msg.Header["Received"]
	if len(receivedHeader) == 0 && len(messageIdHeader) == 0 {
		return "", "", ErrNoIdHeaders
	}

	subject, err := decodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return "", "", err
	}

	mailIdHash, err := hash([][]string{messageIdHeader, receivedHeader})
	if err != nil {
		return "", "", fmt.Errorf("could not hash headers: %w", err)
	}

	return subject, mailIdHash, nil
}

// ParseIncoming turns a fetched mail into an IncomingMessage. fallbackId is
// used when the mail carries neither Message-Id nor Received headers.
func ParseIncoming(raw *domain.RawImapMail, fallbackId string) (*domain.IncomingMessage, error) {
	id := fallbackId
	_, mailIdHash, err := MailHeaderInfos(raw.RawMail)
	switch {
	case err == nil:
		id = mailIdHash
	case errors.Is(err, ErrNoIdHeaders):
	default:
		return nil, fmt.Errorf("could not parse mail header infos: %w", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw.RawMail))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("could not read mail: %w", err)
	}
	defer mr.Close()

	msg := &domain.IncomingMessage{
		Id:  id,
		Uid: raw.Uid,
	}

	header := mr.Header
	msg.Subject, err = header.Subject()
	if err != nil {
		msg.Subject = header.Get("Subject")
	}
	msg.MessageId, _ = header.MessageID()

	if from, err := header.AddressList("From"); err == nil && len(from) > 0 {
		msg.FromEmail = strings.ToLower(from[0].Address)
		msg.FromName = from[0].Name
	} else {
		// unparsable senders never match the authorized sender
		msg.FromEmail = strings.ToLower(strings.TrimSpace(header.Get("From")))
	}

	if to, err := header.AddressList("To"); err == nil && len(to) > 0 {
		msg.ToEmail = strings.ToLower(to[0].Address)
	}

	if cc, err := header.AddressList("Cc"); err == nil {
		for _, a := range cc {
			msg.Cc = append(msg.Cc, strings.ToLower(a.Address))
		}
	}

	msg.Date, err = header.Date()
	if err != nil || msg.Date.IsZero() {
		msg.Date = raw.InternalDate
	}

	var plain, rich string
	var havePlain, haveRich bool
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return nil, fmt.Errorf("could not read mail part: %w", err)
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, err := ioutil.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read inline part: %w", err)
			}

			switch {
			case contentType == "text/html" && !haveRich:
				rich, haveRich = string(body), true
			case (contentType == "text/plain" || contentType == "") && !havePlain:
				plain, havePlain = string(body), true
			}
		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			size, err := io.Copy(ioutil.Discard, p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read attachment: %w", err)
			}

			msg.Attachment = append(msg.Attachment, domain.Attachment{
				Filename:    filename,
				ContentType: contentType,
				Size:        int(size),
			})
		}
	}

	switch {
	case havePlain:
		msg.Body, msg.BodyKind = strings.TrimSpace(plain), domain.BodyPlain
	case haveRich:
		msg.Body, msg.BodyKind = strings.TrimSpace(rich), domain.BodyRich
	default:
		msg.BodyKind = domain.BodyPlain
	}

	return msg, nil
}

// Text renders the body as plain text, converting rich bodies to markdown.
func Text(msg *domain.IncomingMessage) string {
	if msg.BodyKind != domain.BodyRich {
		return msg.Body
	}

	markdown, err := htmltomarkdown.ConvertString(msg.Body)
	if err != nil {
		return msg.Body
	}
	return strings.TrimSpace(markdown)
}

func ShortSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) > 30 {
		subject = string(runes[:30]) + "..."
	}
	return subject
}

func decodeHeader(value string) (string, error) {
	dec := &mime.WordDecoder{
		CharsetReader: charset.Reader,
	}
	decoded, err := dec.DecodeHeader(value)
	if err != nil {
		return "", fmt.Errorf("could decode header: %w", err)
	}
	return decoded, nil
}

func hash(input [][]string) (string, error) {
	sha := sha256.New()
	for _, i := range input {
		for _, ii := range i {
			_, err := sha.Write([]byte(ii))
			if err != nil {
				return "", fmt.Errorf("could not hash: %w", err)
			}
		}
	}

	return fmt.Sprintf("%x", sha.Sum(nil)), nil
}
