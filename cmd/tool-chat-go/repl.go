package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minhyannv/tool-chat-go/pkg/conversation"
	loggerpkg "github.com/minhyannv/tool-chat-go/pkg/logger"
)

// chatRunner runs one conversational turn.
type chatRunner interface {
	Run(ctx context.Context, input string) (conversation.Message, error)
	Reset()
}

// replOptions configures REPL behavior.
type replOptions struct {
	TypingDelay time.Duration
	Verbose     bool
	Logger      loggerpkg.Logger
	// Sleep pauses between revealed characters; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// runREPL reads one line per turn until quit, end of input or cancellation.
func runREPL(ctx context.Context, app chatRunner, opts replOptions, in io.Reader, out io.Writer) error {
	if app == nil {
		return fmt.Errorf("chat runner is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", map[string]any{
		"typing_delay": opts.TypingDelay.String(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)
	printWelcome(out)

	for {
		_, _ = fmt.Fprint(out, "You: ")

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			_, _ = fmt.Fprintln(out)
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if isQuit(input) {
			_, _ = fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if strings.HasPrefix(input, "/") {
			if handleCommand(input, app, out) {
				return nil
			}
			continue
		}

		finalMessage, err := app.Run(ctx, input)
		if err != nil {
			loggerpkg.Warn(opts.Logger, "turn failed", map[string]any{"err": err})
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}
		printAnswer(out, finalMessage.Content, opts.TypingDelay, opts.Sleep)
	}

	select {
	case err := <-readErr:
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	default:
	}
	return nil
}

// readLines scans in on its own goroutine so a blocked read does not hold
// up cancellation.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func isQuit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "quit")
}

// printAnswer writes the labelled answer, optionally one rune at a time.
func printAnswer(out io.Writer, text string, delay time.Duration, sleep func(time.Duration)) {
	_, _ = fmt.Fprint(out, "Assistant: ")
	if delay <= 0 {
		_, _ = fmt.Fprint(out, text)
	} else {
		for _, r := range text {
			_, _ = fmt.Fprint(out, string(r))
			sleep(delay)
		}
	}
	_, _ = fmt.Fprint(out, "\n\n")
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Welcome! I'm your AI assistant. Type 'quit' to exit.")
	_, _ = fmt.Fprintln(out, "You can ask me to perform calculations or chat with me.")
	_, _ = fmt.Fprintln(out)
}

// handleCommand runs a slash command and reports whether to quit.
func handleCommand(input string, app chatRunner, out io.Writer) bool {
	cmd := strings.ToLower(input)
	switch cmd {
	case "/help", "/h":
		printHelp(out)
	case "/clear", "/c":
		app.Reset()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
	}
	return false
}

func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  quit   - Exit the program")
	_, _ = fmt.Fprintln(out, "  /help  - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /quit  - Exit the program")
	_, _ = fmt.Fprintln(out, "  /exit  - Exit the program")
	_, _ = fmt.Fprintln(out)
}
