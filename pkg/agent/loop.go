package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
	"github.com/minhyannv/tool-chat-go/pkg/model"
	"github.com/minhyannv/tool-chat-go/pkg/prompt"
	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

var (
	ErrEmptyInput = errors.New("user input is required")
	ErrMaxSteps   = errors.New("max steps reached before assistant produced a final response")
)

// State is a dispatch loop state.
type State int

const (
	StateAgent State = iota
	StateTools
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateAgent:
		return "agent"
	case StateTools:
		return "tools"
	case StateEnd:
		return "end"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Next returns the state that follows an agent step producing msg.
func Next(msg conversation.Message) State {
	if msg.HasToolCalls() {
		return StateTools
	}
	return StateEnd
}

// Stats describes the most recent turn.
type Stats struct {
	Steps     int
	ToolCalls int
}

// AgentLoop holds agent runtime state.
type AgentLoop struct {
	config       configpkg.Config
	model        model.Model
	tools        *tools.Registry
	SystemPrompt string
	history      *conversation.Conversation
	stats        Stats

	logger  loggerpkg.Logger
	verbose bool
}

// New initializes an AgentLoop. Without WithModel the adapter is built from
// cfg, which must then carry credentials; without WithRegistry the built-in
// tools are registered.
func New(cfg configpkg.Config, opts ...AgentOption) (*AgentLoop, error) {
	cfg = configpkg.Normalize(cfg)
	deps := agentDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "agent_loop init", map[string]any{
		"provider":     cfg.Provider,
		"model":        cfg.Model,
		"base_url":     cfg.BaseURL,
		"max_steps":    cfg.MaxSteps,
		"keep_history": cfg.KeepHistory,
	})

	if deps.model == nil {
		if err := configpkg.Validate(cfg); err != nil {
			return nil, err
		}
		m, err := model.New(cfg, model.WithLogger(deps.logger, cfg.Verbose))
		if err != nil {
			return nil, err
		}
		deps.model = m
	}

	if deps.registry == nil {
		registry, err := tools.NewBuiltinRegistry(tools.Context{
			Verbose: cfg.Verbose,
			Logger:  deps.logger,
			Notice:  deps.notice,
		})
		if err != nil {
			return nil, fmt.Errorf("register tools: %w", err)
		}
		deps.registry = registry
	}
	loggerpkg.Debug(cfg.Verbose, deps.logger, "tools registered", map[string]any{
		"tools": deps.registry.Names(),
	})

	systemPrompt := ""
	if cfg.SystemPrompt != configpkg.NoSystemPrompt {
		systemPrompt = prompt.BuildSystemPrompt(deps.registry.Specs(), cfg.SystemPrompt)
	}

	a := &AgentLoop{
		config:       cfg,
		model:        deps.model,
		tools:        deps.registry,
		SystemPrompt: systemPrompt,

		logger:  deps.logger,
		verbose: cfg.Verbose,
	}
	a.Reset()
	return a, nil
}

// Run processes one user input and returns the final assistant message.
// With KeepHistory the conversation persists across calls; a failed turn is
// rolled back so the next one starts from a consistent history.
func (a *AgentLoop) Run(ctx context.Context, userInput string) (conversation.Message, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return conversation.Message{}, ErrEmptyInput
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !a.config.KeepHistory {
		a.Reset()
	}

	previousLen := a.history.Len()
	a.history.Append(conversation.User(userInput))
	a.stats = Stats{}

	final, err := a.runIteration(ctx)
	if err != nil {
		a.history.Truncate(previousLen)
		loggerpkg.Debug(a.verbose, a.logger, "turn failed", map[string]any{
			"steps":      a.stats.Steps,
			"tool_calls": a.stats.ToolCalls,
			"err":        err,
		})
		return conversation.Message{}, err
	}
	loggerpkg.Debug(a.verbose, a.logger, "turn complete", map[string]any{
		"steps":      a.stats.Steps,
		"tool_calls": a.stats.ToolCalls,
		"history":    a.history.Len(),
	})
	return final, nil
}

// runIteration drives the AGENT/TOOLS machine until END.
func (a *AgentLoop) runIteration(ctx context.Context) (conversation.Message, error) {
	state := StateAgent
	var last conversation.Message
	for {
		switch state {
		case StateAgent:
			if a.config.MaxSteps > 0 && a.stats.Steps >= a.config.MaxSteps {
				return conversation.Message{}, fmt.Errorf("%w (%d)", ErrMaxSteps, a.config.MaxSteps)
			}
			msg, err := a.runOnce(ctx)
			if err != nil {
				return conversation.Message{}, err
			}
			last = msg
			state = Next(msg)
		case StateTools:
			if err := a.runTools(ctx, last.ToolCalls); err != nil {
				return conversation.Message{}, err
			}
			state = StateAgent
		case StateEnd:
			return last, nil
		default:
			return conversation.Message{}, fmt.Errorf("invalid state %s", state)
		}
		a.debugf("iteration: step=%d state=%s", a.stats.Steps, state)
	}
}

// runOnce performs one agent step and appends its message.
func (a *AgentLoop) runOnce(ctx context.Context) (conversation.Message, error) {
	if err := a.history.CheckAnswered(); err != nil {
		return conversation.Message{}, err
	}
	a.stats.Steps++
	msg, err := a.model.Step(ctx, a.history.Messages(), a.tools.Specs())
	if err != nil {
		return conversation.Message{}, err
	}
	msg.Role = conversation.RoleAssistant
	a.history.Append(msg)
	if msg.HasToolCalls() {
		a.debugf("iteration: assistant requested %d tool call(s)", len(msg.ToolCalls))
	}
	return msg, nil
}

// runTools answers every call in order, one result per call.
func (a *AgentLoop) runTools(ctx context.Context, calls []conversation.ToolCall) error {
	for _, call := range calls {
		a.stats.ToolCalls++
		output, err := a.tools.Invoke(ctx, call)
		if err != nil {
			return err
		}
		a.history.Append(conversation.ToolResult(call.ID, output))
	}
	return nil
}

// Reset clears conversation history and keeps only the system prompt.
func (a *AgentLoop) Reset() {
	if a.SystemPrompt == "" {
		a.history = conversation.New()
		return
	}
	a.history = conversation.New(conversation.System(a.SystemPrompt))
}

// History returns a copy of the current conversation.
func (a *AgentLoop) History() []conversation.Message {
	return a.history.Messages()
}

// Stats reports step and tool-call counts of the most recent turn.
func (a *AgentLoop) Stats() Stats {
	return a.stats
}

func (a *AgentLoop) debugf(format string, args ...any) {
	loggerpkg.Debugf(a.verbose, a.logger, format, args...)
}
