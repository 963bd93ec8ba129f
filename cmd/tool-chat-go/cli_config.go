package main

import (
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	configpkg "github.com/minhyannv/tool-chat-go/pkg/config"
)

const configEnv = "TOOL_CHAT_CONFIG"

// yamlSource exposes one key of the YAML config file as a flag value source.
type yamlSource struct {
	data map[string]any
	key  string
}

func (y *yamlSource) Lookup() (string, bool) {
	return configpkg.Lookup(y.data, y.key)
}

func (y *yamlSource) String() string   { return "yaml key " + y.key }
func (y *yamlSource) GoString() string { return "&yamlSource{key:" + y.key + "}" }

// cliFlags builds the flag set. Precedence: flag > env var > YAML file > default.
func cliFlags(fileData map[string]any) []cli.Flag {
	defaults := configpkg.DefaultConfig()

	src := func(key string, env ...string) cli.ValueSourceChain {
		chain := cli.ValueSourceChain{}
		for _, e := range env {
			chain.Chain = append(chain.Chain, cli.EnvVar(e))
		}
		if len(fileData) > 0 {
			chain.Chain = append(chain.Chain, &yamlSource{data: fileData, key: key})
		}
		return chain
	}

	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file", Sources: cli.EnvVars(configEnv)},

		&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Value: defaults.Provider, Usage: "model provider: openai or anthropic", Sources: src("provider", "TOOL_CHAT_PROVIDER")},
		&cli.StringFlag{Name: "api-key", Usage: "API key (defaults to OPENAI_API_KEY or ANTHROPIC_API_KEY)", Sources: src("api-key", "TOOL_CHAT_API_KEY")},
		&cli.StringFlag{Name: "base-url", Usage: "API base URL (defaults to OPENAI_BASE_URL or ANTHROPIC_BASE_URL)", Sources: src("base-url", "TOOL_CHAT_BASE_URL")},
		&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "model name (defaults to OPENAI_MODEL or ANTHROPIC_MODEL)", Sources: src("model", "TOOL_CHAT_MODEL")},
		&cli.FloatFlag{Name: "temperature", Value: defaults.Temperature, Usage: "sampling temperature", Sources: src("temperature", "TOOL_CHAT_TEMPERATURE")},
		&cli.IntFlag{Name: "max-tokens", Value: defaults.MaxTokens, Usage: "maximum tokens per model response", Sources: src("max-tokens", "TOOL_CHAT_MAX_TOKENS")},

		&cli.IntFlag{Name: "max-steps", Value: defaults.MaxSteps, Usage: "max agent steps per turn (0 = unbounded)", Sources: src("max-steps", "TOOL_CHAT_MAX_STEPS")},
		&cli.BoolFlag{Name: "keep-history", Value: defaults.KeepHistory, Usage: "keep the conversation across turns", Sources: src("keep-history", "TOOL_CHAT_KEEP_HISTORY")},
		&cli.DurationFlag{Name: "typing-delay", Value: defaults.TypingDelay, Usage: "reveal answers one character at a time with this delay", Sources: src("typing-delay", "TOOL_CHAT_TYPING_DELAY")},
		&cli.StringFlag{Name: "system-prompt", Usage: "system prompt persona (\"-\" sends none)", Sources: src("system-prompt", "TOOL_CHAT_SYSTEM_PROMPT")},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "verbose logging to stderr", Sources: src("verbose", "TOOL_CHAT_VERBOSE")},
	}
}

// configFromCommand loads parsed flags into runtime config. Empty
// credential flags fall back to the provider's own environment variables.
func configFromCommand(cmd *cli.Command) configpkg.Config {
	cfg := configpkg.DefaultConfig()
	cfg.Provider = cmd.String("provider")
	cfg.APIKey = cmd.String("api-key")
	cfg.BaseURL = cmd.String("base-url")
	cfg.Model = cmd.String("model")
	cfg.Temperature = cmd.Float("temperature")
	cfg.MaxTokens = cmd.Int("max-tokens")
	cfg.MaxSteps = cmd.Int("max-steps")
	cfg.KeepHistory = cmd.Bool("keep-history")
	cfg.TypingDelay = cmd.Duration("typing-delay")
	cfg.SystemPrompt = cmd.String("system-prompt")
	cfg.Verbose = cmd.Bool("verbose")

	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = os.Getenv(configpkg.APIKeyEnv(cfg.Provider))
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = os.Getenv(configpkg.BaseURLEnv(cfg.Provider))
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = os.Getenv(configpkg.ModelEnv(cfg.Provider))
	}
	return configpkg.Normalize(cfg)
}

// configPath finds the config file before flags are parsed, so its values
// can seed the flag sources.
func configPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--config" || arg == "-config" || arg == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		}
	}
	return os.Getenv(configEnv)
}
