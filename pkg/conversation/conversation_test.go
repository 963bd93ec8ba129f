package conversation

import (
	"errors"
	"testing"
)

func TestAppendKeepsOrderAndCopies(t *testing.T) {
	calls := []ToolCall{{ID: "a", Name: "calculator", Arguments: `{"a":1,"b":2}`}}
	c := New(System("sys"))
	c.Append(User("hi"))
	c.Append(Assistant("", calls...))

	calls[0].Name = "mutated"

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[1].Role != RoleUser || msgs[2].Role != RoleAssistant {
		t.Fatalf("unexpected order: %+v", msgs)
	}
	if msgs[2].ToolCalls[0].Name != "calculator" {
		t.Fatalf("stored message was edited through caller slice: %+v", msgs[2])
	}

	msgs[2].ToolCalls[0].Name = "mutated again"
	last, ok := c.Last()
	if !ok || last.ToolCalls[0].Name != "calculator" {
		t.Fatalf("stored message was edited through Messages copy: %+v", last)
	}
}

func TestLastOnEmpty(t *testing.T) {
	if _, ok := New().Last(); ok {
		t.Fatal("expected no last message on empty conversation")
	}
}

func TestTruncate(t *testing.T) {
	c := New(System("sys"), User("one"), Assistant("two"))
	c.Truncate(1)
	if c.Len() != 1 {
		t.Fatalf("expected 1 message after truncate, got %d", c.Len())
	}
	c.Truncate(5)
	if c.Len() != 1 {
		t.Fatalf("truncate past the end must not grow, got %d", c.Len())
	}
	c.Truncate(-1)
	if c.Len() != 0 {
		t.Fatalf("expected empty conversation, got %d", c.Len())
	}
}

func TestUnansweredTracksEveryCall(t *testing.T) {
	c := New(User("add and greet"))
	c.Append(Assistant("",
		ToolCall{ID: "1", Name: "calculator"},
		ToolCall{ID: "2", Name: "say_hello"},
	))

	if got := c.Unanswered(); len(got) != 2 {
		t.Fatalf("expected 2 pending calls, got %+v", got)
	}
	if err := c.CheckAnswered(); !errors.Is(err, ErrUnansweredToolCall) {
		t.Fatalf("expected ErrUnansweredToolCall, got %v", err)
	}

	c.Append(ToolResult("1", "The sum of 1 and 2 is 3"))
	got := c.Unanswered()
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected call 2 pending, got %+v", got)
	}

	c.Append(ToolResult("2", "Hello Ada, i hope you are well today."))
	if err := c.CheckAnswered(); err != nil {
		t.Fatalf("expected all calls answered, got %v", err)
	}
}

func TestUnansweredIgnoresPlainAnswers(t *testing.T) {
	c := New(User("hi"), Assistant("hello"))
	if got := c.Unanswered(); got != nil {
		t.Fatalf("expected no pending calls, got %+v", got)
	}
}

func TestUnansweredDuplicateIDsNeedOneResultEach(t *testing.T) {
	c := New(Assistant("",
		ToolCall{ID: "x", Name: "calculator"},
		ToolCall{ID: "x", Name: "calculator"},
	))
	c.Append(ToolResult("x", "3"))
	if got := c.Unanswered(); len(got) != 1 {
		t.Fatalf("expected one pending duplicate call, got %+v", got)
	}
}
