// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"

	"github.com/emersion/go-message/mail"
)

// Compose renders an outgoing mail as RFC 5322 bytes. Bcc recipients are not
// written into the header.
func Compose(fromAddress string, out *domain.OutgoingMail, date time.Time) ([]byte, error) {
	if len(out.To) == 0 {
		return nil, fmt.Errorf("mail has no recipients")
	}

	header := mail.Header{}
	header.SetDate(date)
	header.SetAddressList("From", []*mail.Address{{Name: out.FromName, Address: fromAddress}})
	header.SetAddressList("To", addressList(out.To))
	if len(out.Cc) > 0 {
		header.SetAddressList("Cc", addressList(out.Cc))
	}
	header.SetSubject(out.Subject)
	err := header.GenerateMessageIDWithHostname(hostOf(fromAddress))
	if err != nil {
		return nil, fmt.Errorf("could not generate message id: %w", err)
	}
	if len(out.InReplyTo) > 0 {
		header.SetMsgIDList("In-Reply-To", []string{out.InReplyTo})
		header.SetMsgIDList("References", []string{out.InReplyTo})
	}

	contentType := "text/plain"
	if out.BodyKind == domain.BodyRich {
		contentType = "text/html"
	}
	header.SetContentType(contentType, map[string]string{"charset": "utf-8"})

	buffer := &bytes.Buffer{}
	bodyWriter, err := mail.CreateSingleInlineWriter(buffer, header)
	if err != nil {
		return nil, fmt.Errorf("could not create mail writer: %w", err)
	}

	_, err = bodyWriter.Write([]byte(out.Body))
	if err != nil {
		return nil, fmt.Errorf("could not write mail body: %w", err)
	}

	err = bodyWriter.Close()
	if err != nil {
		return nil, fmt.Errorf("could not close mail writer: %w", err)
	}

	return buffer.Bytes(), nil
}

// Recipients lists every envelope recipient of out, Bcc included.
func Recipients(out *domain.OutgoingMail) []string {
	recipients := []string{}
	seen := map[string]bool{}
	for _, list := range [][]string{out.To, out.Cc, out.Bcc} {
		for _, r := range list {
			key := strings.ToLower(r)
			if seen[key] {
				continue
			}
			seen[key] = true
			recipients = append(recipients, r)
		}
	}
	return recipients
}

func addressList(addresses []string) []*mail.Address {
	list := make([]*mail.Address, 0, len(addresses))
	for _, a := range addresses {
		list = append(list, &mail.Address{Address: a})
	}
	return list
}

func hostOf(address string) string {
	at := strings.LastIndex(address, "@")
	if at < 0 || at == len(address)-1 {
		return "localhost"
	}
	return address[at+1:]
}
