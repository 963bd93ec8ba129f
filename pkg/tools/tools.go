package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
	ErrDuplicateTool    = errors.New("duplicate tool")
	ErrInvalidTool      = errors.New("invalid tool")
)

// Handler runs a tool with raw JSON arguments.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Spec describes one callable tool.
type Spec struct {
	Name        string
	Description string
	Parameters  map[string]any
	Handler     Handler
}

// Context carries shared dependencies for tool execution.
type Context struct {
	Verbose bool
	Logger  loggerpkg.Logger
	// Notice receives one "Tool called" line per invocation.
	Notice io.Writer
}

func (c Context) debug(msg string, obj any) {
	loggerpkg.Debug(c.Verbose, c.Logger, msg, obj)
}

// Registry holds registered tools and handles execution. It is immutable
// once built.
type Registry struct {
	registry map[string]Spec
	specs    []Spec
	ctx      Context
}

// NewRegistry builds a registry from specs, in order.
func NewRegistry(ctx Context, specs ...Spec) (*Registry, error) {
	if ctx.Logger == nil {
		ctx.Logger = loggerpkg.NopLogger{}
	}
	r := &Registry{
		registry: make(map[string]Spec, len(specs)),
		ctx:      ctx,
	}
	for _, s := range specs {
		if err := r.register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(s Spec) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTool)
	}
	if s.Handler == nil {
		return fmt.Errorf("%w: %s has no handler", ErrInvalidTool, s.Name)
	}
	if _, ok := r.registry[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, s.Name)
	}
	r.registry[s.Name] = s
	r.specs = append(r.specs, s)
	r.ctx.debug("registered tool", map[string]any{"tool": s.Name})
	return nil
}

// Specs returns the registered tools in registration order.
func (r *Registry) Specs() []Spec {
	return append([]Spec(nil), r.specs...)
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		out = append(out, s.Name)
	}
	return out
}

// Lookup resolves a tool by name.
func (r *Registry) Lookup(name string) (Spec, error) {
	s, ok := r.registry[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return s, nil
}

// Invoke runs the tool named by call and returns its output.
func (r *Registry) Invoke(ctx context.Context, call conversation.ToolCall) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := r.Lookup(call.Name)
	if err != nil {
		return "", err
	}

	if r.ctx.Notice != nil {
		_, _ = fmt.Fprintf(r.ctx.Notice, "Tool called: %s\n", s.Name)
	}
	r.ctx.debug("tool call", map[string]any{
		"tool":      s.Name,
		"id":        call.ID,
		"arguments": call.Arguments,
	})

	args := json.RawMessage(call.Arguments)
	if strings.TrimSpace(call.Arguments) == "" {
		args = json.RawMessage("{}")
	}
	out, err := s.Handler(ctx, args)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", s.Name, err)
	}
	r.ctx.debug("tool result", map[string]any{"tool": s.Name, "bytes": len(out)})
	return out, nil
}
