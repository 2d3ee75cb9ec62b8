// SPDX-License-Identifier: GPL-3.0-or-later
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/sirupsen/logrus"
)

type handler func(ctx context.Context, args json.RawMessage) (*domain.ToolResult, error)

type tool struct {
	spec   domain.ToolSpec
	handle handler
}

// Registry maps tool names to their schema and handler.
type Registry struct {
	tools map[string]*tool
	l     *logrus.Logger
}

func NewRegistry() *Registry {
	return &Registry{
		tools: map[string]*tool{},
		l:     log.Logger(log.LOG_TOOLS),
	}
}

// NewAssistantRegistry registers every tool the mail assistant offers.
func NewAssistantRegistry(sender domain.MailSender, scheduler domain.TaskScheduler, contacts domain.ContactStore, senderName string) *Registry {
	r := NewRegistry()
	r.register(sendReplySpec, sendReply(sender, senderName))
	r.register(createScheduledTaskSpec, createScheduledTask(scheduler))
	r.register(listScheduledTasksSpec, listScheduledTasks(scheduler))
	r.register(searchContactSpec, searchContact(contacts))
	r.register(addContactSpec, addContact(contacts))
	return r
}

func (r *Registry) register(spec domain.ToolSpec, h handler) {
	if _, ok := r.tools[spec.Name]; ok {
		panic("tool " + spec.Name + " registered twice")
	}
	r.tools[spec.Name] = &tool{spec: spec, handle: h}
}

// Specs lists the registered tools sorted by name.
func (r *Registry) Specs() []domain.ToolSpec {
	specs := make([]domain.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}

func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (*domain.ToolResult, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %w %s", domain.ErrToolExecution, domain.ErrUnknownTool, name)
	}

	result, err := t.handle(ctx, args)
	if err != nil {
		r.l.WithError(err).WithField("tool", name).Warn("Tool failed")
		return nil, err
	}

	r.l.WithFields(logrus.Fields{
		"tool":    name,
		"success": result.Success,
	}).Info("Executed tool")
	return result, nil
}

// decodeArgs unmarshals the tool call arguments into v.
func decodeArgs(name string, args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	err := json.Unmarshal(args, v)
	if err != nil {
		return fmt.Errorf("%w: malformed arguments for %s: %w", domain.ErrSerialization, name, err)
	}
	return nil
}

func failed(format string, args ...interface{}) *domain.ToolResult {
	return &domain.ToolResult{
		Success: false,
		Message: fmt.Sprintf(format, args...),
	}
}

func succeeded(data interface{}, format string, args ...interface{}) *domain.ToolResult {
	return &domain.ToolResult{
		Success: true,
		Message: fmt.Sprintf(format, args...),
		Data:    data,
	}
}

func schema(s string) json.RawMessage {
	if !json.Valid([]byte(s)) {
		panic("invalid tool schema: " + s)
	}
	return json.RawMessage(s)
}
