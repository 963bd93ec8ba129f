package agent

import (
	"io"

	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
	"github.com/minhyannv/tool-chat-go/pkg/model"
	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

// AgentOption configures optional runtime dependencies for AgentLoop.
type AgentOption func(*agentDeps)

type agentDeps struct {
	logger   loggerpkg.Logger
	model    model.Model
	registry *tools.Registry
	notice   io.Writer
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) AgentOption {
	return func(d *agentDeps) {
		d.logger = l
	}
}

// WithModel replaces the provider adapter built from config.
func WithModel(m model.Model) AgentOption {
	return func(d *agentDeps) {
		d.model = m
	}
}

// WithRegistry replaces the built-in tool registry.
func WithRegistry(r *tools.Registry) AgentOption {
	return func(d *agentDeps) {
		d.registry = r
	}
}

// WithToolNotice sets where the built-in registry prints tool call notices.
func WithToolNotice(w io.Writer) AgentOption {
	return func(d *agentDeps) {
		d.notice = w
	}
}
