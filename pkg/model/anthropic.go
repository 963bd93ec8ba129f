package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

// Anthropic runs agent steps against the Messages API.
type Anthropic struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int
	deps
}

// NewAnthropic builds an adapter with retries disabled.
func NewAnthropic(cfg configpkg.Config, opts ...Option) *Anthropic {
	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	return &Anthropic{
		client:      anthropic.NewClient(clientOpts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		deps:        buildDeps(opts),
	}
}

// Step sends the full history. Text blocks are joined into the message
// content; tool_use blocks become tool calls. A response without blocks is an
// assistant message with empty content.
func (m *Anthropic) Step(ctx context.Context, history []conversation.Message, specs []tools.Spec) (conversation.Message, error) {
	system, messages, err := toAnthropicMessages(history)
	if err != nil {
		return conversation.Message{}, err
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(m.model),
		MaxTokens:   int64(m.maxTokens),
		Messages:    messages,
		Temperature: anthropic.Float(m.temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if len(specs) > 0 {
		params.Tools = toAnthropicTools(specs)
	}

	loggerpkg.Debug(m.verbose, m.logger, "anthropic request", map[string]any{
		"model":    m.model,
		"messages": len(messages),
		"tools":    len(specs),
	})
	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return conversation.Message{}, fmt.Errorf("anthropic messages: %w", err)
	}
	loggerpkg.Debug(m.verbose, m.logger, "anthropic response", map[string]any{
		"stop_reason": resp.StopReason,
		"blocks":      len(resp.Content),
	})
	return fromAnthropicMessage(resp), nil
}

func toAnthropicTools(specs []tools.Spec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, s := range specs {
		schema := anthropic.ToolInputSchemaParam{
			Properties: s.Parameters["properties"],
		}
		if required := stringList(s.Parameters["required"]); len(required) > 0 {
			schema.Required = required
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        s.Name,
			Description: anthropic.String(s.Description),
			InputSchema: schema,
		}})
	}
	return out
}

func stringList(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// toAnthropicMessages splits out system text and folds consecutive tool
// results into a single user turn, as the Messages API expects. Assistant
// messages with neither text nor tool calls are omitted.
func toAnthropicMessages(history []conversation.Message) (string, []anthropic.MessageParam, error) {
	var system []string
	out := make([]anthropic.MessageParam, 0, len(history))
	var pendingResults []anthropic.ContentBlockParamUnion

	flush := func() {
		if len(pendingResults) == 0 {
			return
		}
		out = append(out, anthropic.NewUserMessage(pendingResults...))
		pendingResults = nil
	}

	for i, msg := range history {
		if msg.Role != conversation.RoleTool {
			flush()
		}
		switch msg.Role {
		case conversation.RoleSystem:
			system = append(system, msg.Content)
		case conversation.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case conversation.RoleTool:
			pendingResults = append(pendingResults, anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false))
		case conversation.RoleAssistant:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.ToolCalls)+1)
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args := strings.TrimSpace(call.Arguments)
				if args == "" {
					args = "{}"
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, json.RawMessage(args), call.Name))
			}
			if len(blocks) == 0 {
				// empty text blocks are rejected by the API
				continue
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		default:
			return "", nil, fmt.Errorf("invalid message role at index %d: %q", i, msg.Role)
		}
	}
	flush()
	return strings.Join(system, "\n\n"), out, nil
}

func fromAnthropicMessage(resp *anthropic.Message) conversation.Message {
	var text []string
	var calls []conversation.ToolCall
	for _, block := range resp.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if v.Text != "" {
				text = append(text, v.Text)
			}
		case anthropic.ToolUseBlock:
			calls = append(calls, conversation.ToolCall{
				ID:        v.ID,
				Name:      v.Name,
				Arguments: string(v.Input),
			})
		}
	}
	return conversation.Assistant(strings.Join(text, "\n"), calls...)
}
