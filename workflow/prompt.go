// SPDX-License-Identifier: GPL-3.0-or-later
package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/mail"
)

const (
	replyPrefix          = "回复:"
	defaultReplySubject  = "Agent回复邮件"
	emptyContentFallback = "Agent没有正确返回内容～"
	errorSubject         = "Agent process email error"
)

func replySubject(subject string) string {
	if len(strings.TrimSpace(subject)) == 0 {
		subject = defaultReplySubject
	}
	return replyPrefix + subject
}

func apology(err error) string {
	return fmt.Sprintf("Sorry, Agent process email error, detail as below: %s, please try again later!", err)
}

func systemPrompt(master string, tools []domain.ToolSpec) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "You are Email Assistant, a mail assistant skilled in using tools.\n")
	fmt.Fprintf(b, "Mails from %s come from your master, who sends instructions and requests by mail. Handle them as follows:\n", master)
	fmt.Fprintf(b, "- Questions, translations and requests for a written answer: answer them, your final answer becomes the body of a formal reply mail.\n")
	fmt.Fprintf(b, "- Requests to mail somebody else: use %s. Without an address look the person up with search-contact, if that fails ask the master for the address in your answer.\n", domain.ToolSendReply)
	fmt.Fprintf(b, "- Reminders: create them with create-scheduled-task and report the result whether it succeeded or not.\n")
	fmt.Fprintf(b, "- Questions about existing reminders: use list-scheduled-tasks and report the result.\n")
	fmt.Fprintf(b, "Your final answer is mailed to %s, keep it formal and warm and answer in the language of the mail.\n", master)

	if len(tools) > 0 {
		fmt.Fprintf(b, "\nAvailable tools:\n")
		for _, t := range tools {
			fmt.Fprintf(b, "- %s: %s\n", t.Name, t.Description)
		}
	}

	return b.String()
}

func userContent(msg *domain.IncomingMessage) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(b, "From: %s <%s>\n", msg.FromName, msg.FromEmail)
	fmt.Fprintf(b, "Date: %s\n", msg.Date.Format(time.RFC1123Z))
	if len(msg.Cc) > 0 {
		fmt.Fprintf(b, "Cc: %s\n", strings.Join(msg.Cc, ", "))
	}
	for _, a := range msg.Attachment {
		fmt.Fprintf(b, "Attachment: %s (%s, %d bytes)\n", a.Filename, a.ContentType, a.Size)
	}
	fmt.Fprintf(b, "Body:\n%s\n", mail.Text(msg))
	return b.String()
}
