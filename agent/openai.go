package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/scribeflow/scribe/protocol"
)

// New creates a Generator from configuration. Unset fields fall back to
// DefaultConfig. Credential resolution happens here, before any request:
// providers that require an API key fail with ErrMissingAPIKey when neither
// Config.APIKey nor the APIKeyEnv environment variable supplies one.
func New(cfg Config) (Generator, error) {
	resolved := DefaultConfig()
	if cfg.Provider == "ollama" {
		resolved.Model = "llama3.2"
	}
	resolved.Merge(&cfg)

	switch resolved.Provider {
	case "openai":
		return newOpenAI(resolved)
	case "ollama":
		return newOllama(resolved)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, resolved.Provider)
	}
}

// chatClient implements Generator against OpenAI-style chat completion
// endpoints. Both the hosted OpenAI API and local Ollama (which exposes an
// OpenAI-compatible surface) go through this client.
type chatClient struct {
	provider string
	config   Config
	http     *httpClient
}

func newOpenAI(cfg Config) (*chatClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}

	key := cfg.APIKey
	if key == "" && cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	if key == "" {
		envName := cfg.APIKeyEnv
		if envName == "" {
			envName = "OPENAI_API_KEY"
		}
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, envName)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + key,
	}

	return &chatClient{
		provider: "openai",
		config:   cfg,
		http:     newHTTPClient(cfg.BaseURL, cfg.TimeoutSec, headers),
	}, nil
}

func newOllama(cfg Config) (*chatClient, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}

	// Ollama runs locally and needs no credential.
	return &chatClient{
		provider: "ollama",
		config:   cfg,
		http:     newHTTPClient(cfg.BaseURL, cfg.TimeoutSec, nil),
	}, nil
}

func (c *chatClient) Generate(ctx context.Context, messages []protocol.Message) (string, error) {
	body := map[string]any{
		"model":    c.config.Model,
		"messages": buildChatMessages(messages),
	}
	if c.config.MaxTokens > 0 {
		body["max_tokens"] = c.config.MaxTokens
	}
	if c.config.Temperature > 0 {
		body["temperature"] = c.config.Temperature
	}

	resp, err := c.http.post(ctx, "/chat/completions", body)
	if err != nil {
		return "", fmt.Errorf("%w: %s chat: %v", ErrGeneration, c.provider, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s chat: %s", ErrGeneration, c.provider, readErrorBody(resp))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %s chat decode: %v", ErrGeneration, c.provider, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: %s chat: response has no choices", ErrGeneration, c.provider)
	}

	return parsed.Choices[0].Message.Content, nil
}

func buildChatMessages(messages []protocol.Message) []map[string]string {
	out := make([]map[string]string, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]string{
			"role":    string(m.Role),
			"content": m.Content,
		})
	}
	return out
}

// chatResponse is the subset of the OpenAI response shape this client reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
