package agent

// Config describes a generation provider. Model and sampling options are
// passed through to the API verbatim; nothing here is interpreted beyond
// provider selection and credential resolution.
type Config struct {
	// Provider selects the backend: "openai" or "ollama".
	Provider string `json:"provider"`

	// Model is the provider's model identifier.
	Model string `json:"model"`

	// BaseURL overrides the provider's default endpoint. Useful for
	// OpenAI-compatible gateways and tests.
	BaseURL string `json:"base_url,omitempty"`

	// APIKey is the credential sent as a bearer token. Usually left empty
	// in config files and resolved from APIKeyEnv instead.
	APIKey string `json:"api_key,omitempty"`

	// APIKeyEnv names the environment variable consulted when APIKey is
	// empty.
	APIKeyEnv string `json:"api_key_env,omitempty"`

	// Temperature and MaxTokens are forwarded in the request body when
	// positive.
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// TimeoutSec bounds a single generation request.
	TimeoutSec int `json:"timeout_sec,omitempty"`
}

// DefaultConfig returns a hosted OpenAI configuration with the API key
// resolved from OPENAI_API_KEY.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		APIKeyEnv:   "OPENAI_API_KEY",
		Temperature: 0.7,
		MaxTokens:   1024,
		TimeoutSec:  60,
	}
}

func (c *Config) Merge(source *Config) {
	if source.Provider != "" {
		c.Provider = source.Provider
	}

	if source.Model != "" {
		c.Model = source.Model
	}

	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}

	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}

	if source.APIKeyEnv != "" {
		c.APIKeyEnv = source.APIKeyEnv
	}

	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}

	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}

	if source.TimeoutSec > 0 {
		c.TimeoutSec = source.TimeoutSec
	}
}
