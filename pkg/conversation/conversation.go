// Package conversation holds the ordered, append-only message history that
// is resent to the model on every step.
package conversation

import (
	"errors"
	"fmt"
)

// ErrUnansweredToolCall reports a tool call that has no matching tool result.
var ErrUnansweredToolCall = errors.New("unanswered tool call")

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model-issued request to run a named tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Message is one entry in the conversation.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Assistant builds an assistant message, optionally carrying tool calls.
func Assistant(content string, calls ...ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: calls}
}

// ToolResult builds the answer to the tool call with the given ID.
func ToolResult(callID, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallID: callID}
}

// HasToolCalls reports whether the message requests any tool invocations.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

func (m Message) clone() Message {
	if m.ToolCalls != nil {
		m.ToolCalls = append([]ToolCall(nil), m.ToolCalls...)
	}
	return m
}

// Conversation is an ordered message history. Messages are only appended;
// stored messages are copies and are never edited.
type Conversation struct {
	messages []Message
}

// New returns a conversation seeded with the given messages.
func New(seed ...Message) *Conversation {
	c := &Conversation{}
	for _, m := range seed {
		c.Append(m)
	}
	return c
}

// Append adds msg to the end of the conversation.
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg.clone())
}

// Messages returns a copy of the history in chronological order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	for i, m := range c.messages {
		out[i] = m.clone()
	}
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the newest message.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1].clone(), true
}

// Truncate drops every message after the first n. It is used to roll back a
// failed turn to a length recorded before the turn started.
func (c *Conversation) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(c.messages) {
		return
	}
	clear(c.messages[n:])
	c.messages = c.messages[:n]
}

// Unanswered returns the tool calls of the newest assistant message that have
// no tool result after it.
func (c *Conversation) Unanswered() []ToolCall {
	idx := -1
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			idx = i
			break
		}
	}
	if idx < 0 || !c.messages[idx].HasToolCalls() {
		return nil
	}

	answered := make(map[string]int)
	for _, m := range c.messages[idx+1:] {
		if m.Role == RoleTool {
			answered[m.ToolCallID]++
		}
	}

	var out []ToolCall
	for _, call := range c.messages[idx].ToolCalls {
		if answered[call.ID] == 0 {
			out = append(out, call)
			continue
		}
		answered[call.ID]--
	}
	return out
}

// CheckAnswered returns ErrUnansweredToolCall when the newest assistant
// message still has pending tool calls.
func (c *Conversation) CheckAnswered() error {
	pending := c.Unanswered()
	if len(pending) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s (id=%s)", ErrUnansweredToolCall, pending[0].Name, pending[0].ID)
}
