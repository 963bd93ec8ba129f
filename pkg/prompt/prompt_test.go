// Tests for prompt generation helpers.
package prompt

import (
	"strings"
	"testing"

	"github.com/minhyannv/tool-chat-go/pkg/tools"
)

// TestToPromptMarkdown validates markdown formatting of tools.
func TestToPromptMarkdown(t *testing.T) {
	md := ToPromptMarkdown([]tools.Spec{
		{Name: "calculator", Description: "Add two\nnumbers"},
		{Name: "say_hello"},
	})
	if !containsAll(md, []string{
		"## Available Tools",
		"Tools available: calculator, say_hello.",
		"- **calculator**: Add two numbers",
		"- **say_hello**: No description provided.",
	}) {
		t.Fatalf("markdown missing expected content:\n%s", md)
	}
	if ToPromptMarkdown(nil) != "" {
		t.Fatal("expected empty markdown without tools")
	}
}

// TestBuildSystemPrompt verifies system prompt composition.
func TestBuildSystemPrompt(t *testing.T) {
	p := BuildSystemPrompt(tools.Builtins(), "")
	if !containsAll(p, []string{DefaultPersona, "calculator", "say_hello"}) {
		t.Fatalf("prompt missing expected content:\n%s", p)
	}

	custom := BuildSystemPrompt(nil, "  Be terse.  ")
	if custom != "Be terse." {
		t.Fatalf("unexpected custom prompt: %q", custom)
	}
}

// containsAll reports whether all substrings exist in text.
func containsAll(text string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(text, needle) {
			return false
		}
	}
	return true
}
