package model

import (
	"context"
	"fmt"

	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
	"github.com/minhyannv/tool-chat-go/pkg/tools"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI runs agent steps against the Chat Completions API.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
	deps
}

// NewOpenAI builds an adapter. The client never retries: transport failures
// surface to the caller on the first attempt.
func NewOpenAI(cfg configpkg.Config, opts ...Option) *OpenAI {
	return &OpenAI{
		client:      newOpenAIClient(cfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		deps:        buildDeps(opts),
	}
}

func newOpenAIClient(cfg configpkg.Config) openai.Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}

// Step sends the full history and returns the first choice.
func (m *OpenAI) Step(ctx context.Context, history []conversation.Message, specs []tools.Spec) (conversation.Message, error) {
	params, err := m.newChatParams(history, specs)
	if err != nil {
		return conversation.Message{}, err
	}

	loggerpkg.Debug(m.verbose, m.logger, "openai request", map[string]any{
		"model":    m.model,
		"messages": len(history),
		"tools":    len(specs),
	})
	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return conversation.Message{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return conversation.Message{}, fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	choice := completion.Choices[0]
	loggerpkg.Debug(m.verbose, m.logger, "openai response", map[string]any{
		"finish_reason": choice.FinishReason,
		"tool_calls":    len(choice.Message.ToolCalls),
	})
	return fromOpenAIMessage(choice.Message), nil
}

func (m *OpenAI) newChatParams(history []conversation.Message, specs []tools.Spec) (openai.ChatCompletionNewParams, error) {
	messages, err := toOpenAIMessages(history)
	if err != nil {
		return openai.ChatCompletionNewParams{}, err
	}
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(m.model),
		Messages:    messages,
		Temperature: openai.Float(m.temperature),
	}
	if len(specs) > 0 {
		params.Tools = toOpenAITools(specs)
	}
	if m.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(m.maxTokens))
	}
	return params, nil
}

func toOpenAITools(specs []tools.Spec) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(specs))
	for _, s := range specs {
		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        s.Name,
				Description: openai.String(s.Description),
				Parameters:  openai.FunctionParameters(s.Parameters),
			},
		})
	}
	return out
}

func toOpenAIMessages(history []conversation.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for i, msg := range history {
		switch msg.Role {
		case conversation.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case conversation.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case conversation.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		case conversation.RoleAssistant:
			out = append(out, toOpenAIAssistant(msg))
		default:
			return nil, fmt.Errorf("invalid message role at index %d: %q", i, msg.Role)
		}
	}
	return out, nil
}

func toOpenAIAssistant(msg conversation.Message) openai.ChatCompletionMessageParamUnion {
	assistant := openai.ChatCompletionAssistantMessageParam{}
	if msg.Content != "" || !msg.HasToolCalls() {
		assistant.Content.OfString = openai.String(msg.Content)
	}
	for _, call := range msg.ToolCalls {
		assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) conversation.Message {
	if len(msg.ToolCalls) == 0 {
		return conversation.Assistant(msg.Content)
	}
	calls := make([]conversation.ToolCall, 0, len(msg.ToolCalls))
	for _, call := range msg.ToolCalls {
		calls = append(calls, conversation.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return conversation.Assistant(msg.Content, calls...)
}
