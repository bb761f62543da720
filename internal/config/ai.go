package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Question is for per-turn question generation (needs to be fast)
	Question string `json:"question"`

	// Prefill is for initial slot extraction from the opening text
	Prefill string `json:"prefill"`

	// Causes is for cause detection and component extraction
	Causes string `json:"causes"`

	// Gate is for per-slot eligibility checks (needs to be fast)
	Gate string `json:"gate"`

	// Popups is for post-interview popup generation (quality over speed)
	Popups string `json:"popups"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			// Fast models for in-turn operations
			Question: getEnvOrDefault("GEMINI_MODEL_QUESTION", "gemini-2.5-flash-preview-05-20"),
			Prefill:  getEnvOrDefault("GEMINI_MODEL_PREFILL", "gemini-2.5-flash-preview-05-20"),
			Causes:   getEnvOrDefault("GEMINI_MODEL_CAUSES", "gemini-2.5-flash-preview-05-20"),
			Gate:     getEnvOrDefault("GEMINI_MODEL_GATE", "gemini-2.5-flash-preview-05-20"),

			// Quality model for the one-time popup batch
			Popups: getEnvOrDefault("GEMINI_MODEL_POPUPS", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
