// SPDX-License-Identifier: GPL-3.0-or-later
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/CrawX/go-imap-assistant/domain"
	"github.com/CrawX/go-imap-assistant/log"

	"github.com/sirupsen/logrus"
)

// errorBodyLimit caps how much of an error response ends up in the error.
const errorBodyLimit = 512

// Client talks to an OpenAI compatible chat completions endpoint.
type Client struct {
	client  *http.Client
	baseUrl string
	model   string
	apiKey  string

	l *logrus.Logger
}

func NewClient(baseUrl, model, apiKey string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
		model:   model,
		apiKey:  apiKey,
		l:       log.Logger(log.LOG_LLM),
	}
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolCall struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallId string     `json:"tool_call_id,omitempty"`
}

type function struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type tool struct {
	Type     string   `json:"type"`
	Function function `json:"function"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Tools    []tool    `json:"tools,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *Client) Invoke(ctx context.Context, conversation []domain.Turn, tools []domain.ToolSpec) (*domain.AssistantTurn, error) {
	body, err := json.Marshal(c.request(conversation, tools))
	if err != nil {
		return nil, fmt.Errorf("%w: could not serialize completion request: %w", domain.ErrSerialization, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: could not create completion request: %w", domain.ErrLanguageModel, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: could not perform completion request: %w", domain.ErrLanguageModel, err)
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read completion response: %w", domain.ErrLanguageModel, err)
	}

	if resp.StatusCode != http.StatusOK {
		excerpt := string(respBody)
		if len(excerpt) > errorBodyLimit {
			excerpt = excerpt[:errorBodyLimit]
		}
		return nil, fmt.Errorf("%w: unexpected status %d, expected 200: %s", domain.ErrLanguageModel, resp.StatusCode, excerpt)
	}

	completion := &completionResponse{}
	err = json.Unmarshal(respBody, completion)
	if err != nil {
		return nil, fmt.Errorf("%w: could not deserialize completion response: %w", domain.ErrSerialization, err)
	}

	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion response has no choices", domain.ErrLanguageModel)
	}

	choice := completion.Choices[0]
	c.l.WithFields(logrus.Fields{
		"finishReason":     choice.FinishReason,
		"toolCalls":        len(choice.Message.ToolCalls),
		"promptTokens":     completion.Usage.PromptTokens,
		"completionTokens": completion.Usage.CompletionTokens,
	}).Debug("Received completion")

	return assistantTurn(choice.Message)
}

func (c *Client) request(conversation []domain.Turn, specs []domain.ToolSpec) *completionRequest {
	req := &completionRequest{
		Model:    c.model,
		Messages: make([]message, 0, len(conversation)),
	}

	for _, turn := range conversation {
		m := message{
			Role:       string(turn.Role),
			Content:    turn.Content,
			ToolCallId: turn.ToolCallId,
		}
		for _, call := range turn.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, toolCall{
				Id:   call.Id,
				Type: "function",
				Function: functionCall{
					Name:      call.Name,
					Arguments: string(call.Arguments),
				},
			})
		}
		req.Messages = append(req.Messages, m)
	}

	for _, spec := range specs {
		req.Tools = append(req.Tools, tool{
			Type: "function",
			Function: function{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}

	return req
}

func assistantTurn(m message) (*domain.AssistantTurn, error) {
	turn := &domain.AssistantTurn{
		Content: m.Content,
	}

	for _, call := range m.ToolCalls {
		args := strings.TrimSpace(call.Function.Arguments)
		if len(args) == 0 {
			args = "{}"
		}
		if !json.Valid([]byte(args)) {
			return nil, fmt.Errorf("%w: arguments of tool call %s are not valid json", domain.ErrSerialization, call.Function.Name)
		}

		turn.ToolCalls = append(turn.ToolCalls, domain.ToolCall{
			Id:        call.Id,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(args),
		})
	}

	return turn, nil
}
