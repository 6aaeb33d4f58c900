package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required")
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("gemini.timeout must be > 0 (got %v)", c.Gemini.Timeout)
	}

	// The image pipeline is optional, but when enabled it needs both the
	// provider and somewhere to put the result.
	if c.OpenAI.APIKey != "" && !c.Storage.Configured() {
		return fmt.Errorf("storage.bucket is required when openai.api_key is set")
	}

	if c.Vision.MaxAttempts < 1 {
		return fmt.Errorf("vision.max_attempts must be >= 1 (got %d)", c.Vision.MaxAttempts)
	}
	if c.Vision.PromptMaxLen < 200 {
		return fmt.Errorf("vision.prompt_max_len must be >= 200 (got %d)", c.Vision.PromptMaxLen)
	}
	if c.Vision.SanitizedMaxLen <= 0 {
		return fmt.Errorf("vision.sanitized_max_len must be > 0 (got %d)", c.Vision.SanitizedMaxLen)
	}

	if c.Database.Configured() {
		if c.Database.MaxConns <= 0 {
			return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
		}
		if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
		}
	}

	return nil
}
