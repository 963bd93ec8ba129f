// Package prompt assembles the system message sent ahead of the conversation.
package prompt

import (
	"fmt"
	"strings"

	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

// DefaultPersona is used when no base prompt is configured.
const DefaultPersona = "You are a helpful assistant. You can perform calculations or chat with the user. " +
	"Call a tool only when it is needed to answer, and answer in plain text otherwise."

// BuildSystemPrompt constructs the system prompt, including tool metadata.
func BuildSystemPrompt(specs []tools.Spec, base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultPersona
	}

	var sb strings.Builder
	sb.WriteString(base)

	if md := ToPromptMarkdown(specs); md != "" {
		sb.WriteString("\n\n")
		sb.WriteString(md)
	}
	return strings.TrimSpace(sb.String())
}

// ToPromptMarkdown renders a markdown listing of available tools.
func ToPromptMarkdown(specs []tools.Spec) string {
	if len(specs) == 0 {
		return ""
	}

	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, sanitizeMarkdown(s.Name))
	}

	var sb strings.Builder
	sb.WriteString("## Available Tools\n")
	sb.WriteString(fmt.Sprintf("Tools available: %s.\n\n", strings.Join(names, ", ")))
	for _, s := range specs {
		desc := sanitizeMarkdown(s.Description)
		if desc == "" {
			desc = "No description provided."
		}
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", sanitizeMarkdown(s.Name), desc))
	}
	return strings.TrimSpace(sb.String())
}

// sanitizeMarkdown keeps markdown fields single-line and trimmed.
func sanitizeMarkdown(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.TrimSpace(value)
}
