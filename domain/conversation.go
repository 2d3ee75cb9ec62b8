// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -destination=mocks/conversation.go -package=mocks . LanguageModel,ToolRegistry
type Role string

const (
	RoleSystem    = Role("system")
	RoleUser      = Role("user")
	RoleAssistant = Role("assistant")
	RoleTool      = Role("tool")
)

// ToolSendReply is the tool whose successful result counts as the reply.
const ToolSendReply = "send-reply"

type ToolCall struct {
	Id        string
	Name      string
	Arguments json.RawMessage
}

// Turn is one append-only conversation entry.
type Turn struct {
	Role    Role
	Content string

	// assistant turns
	ToolCalls []ToolCall

	// tool turns
	ToolCallId    string
	ToolName      string
	ToolSucceeded bool
}

type AssistantTurn struct {
	Content   string
	ToolCalls []ToolCall
}

type ToolSpec struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

type ToolResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type LanguageModel interface {
	Invoke(ctx context.Context, conversation []Turn, tools []ToolSpec) (*AssistantTurn, error)
}

type ToolRegistry interface {
	Specs() []ToolSpec
	Invoke(ctx context.Context, name string, args json.RawMessage) (*ToolResult, error)
}
