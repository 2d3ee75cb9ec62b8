// SPDX-License-Identifier: GPL-3.0-or-later
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"
	"github.com/CrawX/go-imap-assistant/mail"

	"github.com/sirupsen/logrus"
)

// Task is the state of one reply workflow run for a single message.
type Task struct {
	Message *domain.IncomingMessage
	Status  domain.TaskStatus
	Outcome domain.TaskOutcome

	Conversation         []domain.Turn
	LastAssistantContent string
	Iterations           int

	Replied   bool
	LastError string

	failure error
}

func NewTask(msg *domain.IncomingMessage) *Task {
	return &Task{
		Message: msg,
		Status:  domain.TaskReceived,
	}
}

// Workflow answers authorized mail with exactly one reply, consulting the
// language model and its tools as often as needed.
type Workflow struct {
	model  domain.LanguageModel
	tools  domain.ToolRegistry
	sender domain.MailSender
	store  domain.TaskStore
	config *configuration
	locks  *keyedMutex
	now    func() time.Time

	l *logrus.Logger
}

func NewWorkflow(model domain.LanguageModel, tools domain.ToolRegistry, sender domain.MailSender, store domain.TaskStore, authorizedSender, ownAddress string, configFunc ...ConfigFunc) (*Workflow, error) {
	if len(strings.TrimSpace(authorizedSender)) == 0 {
		return nil, fmt.Errorf("authorized sender cannot be empty")
	}
	if len(strings.TrimSpace(ownAddress)) == 0 {
		return nil, fmt.Errorf("own address cannot be empty")
	}

	config := &configuration{
		AuthorizedSender: strings.ToLower(strings.TrimSpace(authorizedSender)),
		OwnAddress:       strings.ToLower(strings.TrimSpace(ownAddress)),
		SenderName:       "Email Assistant",
		MaxIterations:    10,
		SendTimeout:      2 * time.Minute,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Workflow{
		model:  model,
		tools:  tools,
		sender: sender,
		store:  store,
		config: config,
		locks:  newKeyedMutex(),
		now:    time.Now,
		l:      log.Logger(log.LOG_WORKFLOW),
	}, nil
}

// Handle runs the workflow for msg to its end and stores the outcome. Runs
// for the same message id never overlap, and a message that was already
// answered is not answered again.
func (w *Workflow) Handle(ctx context.Context, msg *domain.IncomingMessage) error {
	unlock := w.locks.lock(msg.Id)
	defer unlock()

	task := NewTask(msg)
	record, err := w.store.FindTaskRecord(msg.Id)
	if err != nil {
		return fmt.Errorf("could not load task record: %w", err)
	}
	if record != nil && record.Replied {
		task.Replied = true
		task.Outcome = record.Outcome
	}

	w.Run(ctx, task)

	err = w.store.SaveTaskRecord(&domain.TaskRecord{
		MessageId:  msg.Id,
		Subject:    msg.Subject,
		Sender:     msg.FromEmail,
		Status:     task.Status,
		Outcome:    task.Outcome,
		Replied:    task.Replied,
		LastError:  task.LastError,
		Iterations: task.Iterations,
		UpdatedAt:  w.now(),
	})
	if err != nil {
		return fmt.Errorf("could not save task record: %w", err)
	}

	if task.Outcome == domain.OutcomeSendFailed {
		return fmt.Errorf("could not send reply: %s", task.LastError)
	}
	return nil
}

// Run drives task through the workflow states until it is recorded.
func (w *Workflow) Run(ctx context.Context, task *Task) {
	l := w.l.WithFields(logrus.Fields{
		"subject": mail.ShortSubject(task.Message.Subject),
		"from":    task.Message.FromEmail,
	})

	for task.Status != domain.TaskRecorded {
		previous := task.Status
		switch task.Status {
		case domain.TaskReceived:
			w.receive(task)
		case domain.TaskDeciding:
			w.decide(ctx, task)
		case domain.TaskToolExecuting:
			w.executeTools(ctx, task)
		case domain.TaskReplying:
			w.reply(ctx, task)
		default:
			task.failure = fmt.Errorf("unknown task status %q", task.Status)
			task.LastError = task.failure.Error()
			task.Status = domain.TaskRecorded
		}
		l.WithFields(logrus.Fields{"state": previous, "next": task.Status}).Debug("Task transition")
	}

	entry := l.WithFields(logrus.Fields{
		"outcome":    task.Outcome,
		"replied":    task.Replied,
		"iterations": task.Iterations,
	})
	if len(task.LastError) > 0 {
		entry.WithField("error", task.LastError).Warn("Task recorded with error")
	} else {
		entry.Info("Task recorded")
	}
}

func (w *Workflow) receive(task *Task) {
	if task.Replied {
		w.l.WithField("messageId", task.Message.Id).Info("Mail was already answered, skipping")
		task.Status = domain.TaskRecorded
		return
	}

	from := strings.ToLower(task.Message.FromEmail)
	if from == w.config.OwnAddress {
		w.l.WithField("subject", mail.ShortSubject(task.Message.Subject)).Info("Ignoring mail sent by myself")
		task.Outcome = domain.OutcomeIgnored
		task.Status = domain.TaskRecorded
		return
	}
	if from != w.config.AuthorizedSender {
		w.l.WithField("from", from).Info("Ignoring mail from unauthorized sender")
		task.Outcome = domain.OutcomeIgnored
		task.Status = domain.TaskRecorded
		return
	}

	if len(task.Conversation) == 0 {
		task.Conversation = append(task.Conversation,
			domain.Turn{Role: domain.RoleSystem, Content: systemPrompt(w.config.AuthorizedSender, w.tools.Specs())},
			domain.Turn{Role: domain.RoleUser, Content: userContent(task.Message)},
		)
	}
	task.Status = domain.TaskDeciding
}

func (w *Workflow) decide(ctx context.Context, task *Task) {
	if task.Iterations >= w.config.MaxIterations {
		w.fail(task, fmt.Errorf("gave up after %d language model calls", task.Iterations))
		return
	}
	task.Iterations++

	start := time.Now()
	answer, err := w.model.Invoke(ctx, task.Conversation, w.tools.Specs())
	if err != nil {
		w.fail(task, err)
		return
	}
	w.l.WithFields(logrus.Fields{
		"duration":  time.Since(start),
		"toolcalls": len(answer.ToolCalls),
	}).Debug("Language model answered")

	task.Conversation = append(task.Conversation, domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   answer.Content,
		ToolCalls: answer.ToolCalls,
	})
	task.LastAssistantContent = answer.Content

	if len(answer.ToolCalls) > 0 {
		task.Status = domain.TaskToolExecuting
	} else {
		task.Status = domain.TaskReplying
	}
}

func (w *Workflow) executeTools(ctx context.Context, task *Task) {
	calls := task.Conversation[len(task.Conversation)-1].ToolCalls

	for _, call := range calls {
		result, err := w.tools.Invoke(ctx, call.Name, call.Arguments)
		if err != nil {
			w.fail(task, fmt.Errorf("tool %s failed: %w", call.Name, err))
			return
		}

		content, err := json.Marshal(result)
		if err != nil {
			w.fail(task, fmt.Errorf("%w: could not encode result of %s: %w", domain.ErrSerialization, call.Name, err))
			return
		}

		task.Conversation = append(task.Conversation, domain.Turn{
			Role:          domain.RoleTool,
			Content:       string(content),
			ToolCallId:    call.Id,
			ToolName:      call.Name,
			ToolSucceeded: result.Success,
		})
	}

	last := task.Conversation[len(task.Conversation)-1]
	if last.Role == domain.RoleTool && last.ToolName == domain.ToolSendReply && last.ToolSucceeded {
		w.l.Info("Reply was sent by tool")
		task.Replied = true
		task.Outcome = domain.OutcomeReplied
		task.Status = domain.TaskRecorded
		return
	}

	task.Status = domain.TaskDeciding
}

func (w *Workflow) reply(ctx context.Context, task *Task) {
	if task.Replied {
		task.Status = domain.TaskRecorded
		return
	}

	msg := task.Message
	out := &domain.OutgoingMail{
		FromName:  w.config.SenderName,
		To:        []string{msg.FromEmail},
		Subject:   replySubject(msg.Subject),
		Body:      task.LastAssistantContent,
		BodyKind:  domain.BodyPlain,
		InReplyTo: msg.MessageId,
	}
	if task.failure != nil {
		out.Subject = errorSubject
		out.Body = apology(task.failure)
	} else if len(strings.TrimSpace(out.Body)) == 0 {
		out.Body = emptyContentFallback
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.config.SendTimeout)
	defer cancel()
	err := w.sender.Send(sendCtx, out)
	if err != nil {
		task.LastError = fmt.Sprintf("could not send reply: %s", err)
		task.Outcome = domain.OutcomeSendFailed
		task.Status = domain.TaskRecorded
		return
	}

	task.Replied = true
	task.Outcome = domain.OutcomeReplied
	task.Status = domain.TaskRecorded
}

// fail routes task to an apology reply carrying err.
func (w *Workflow) fail(task *Task, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, domain.ErrLanguageModel):
		kind = "language model"
	case errors.Is(err, domain.ErrSerialization):
		kind = "serialization"
	case errors.Is(err, domain.ErrToolExecution):
		kind = "tool"
	}
	w.l.WithFields(logrus.Fields{"kind": kind, "error": err}).Warn("Task failed, replying with apology")

	task.failure = err
	task.LastError = err.Error()
	task.Status = domain.TaskReplying
}
