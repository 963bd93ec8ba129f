// Package model adapts hosted chat-completion APIs to a single agent step:
// full history and tool specs in, exactly one assistant message out.
package model

import (
	"context"
	"errors"
	"fmt"

	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

var (
	ErrEmptyResponse   = errors.New("empty model response")
	ErrUnknownProvider = errors.New("unknown provider")
)

// Model produces the next assistant message for a conversation.
type Model interface {
	Step(ctx context.Context, history []conversation.Message, specs []tools.Spec) (conversation.Message, error)
}

// Option configures optional adapter dependencies.
type Option func(*deps)

type deps struct {
	logger  loggerpkg.Logger
	verbose bool
}

// WithLogger injects a logger.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(d *deps) {
		d.logger = l
		d.verbose = verbose
	}
}

func buildDeps(opts []Option) deps {
	d := deps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	if d.logger == nil {
		d.logger = loggerpkg.NopLogger{}
	}
	return d
}

// New returns the adapter selected by cfg.Provider.
func New(cfg configpkg.Config, opts ...Option) (Model, error) {
	switch cfg.Provider {
	case configpkg.ProviderOpenAI, "":
		return NewOpenAI(cfg, opts...), nil
	case configpkg.ProviderAnthropic:
		return NewAnthropic(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
