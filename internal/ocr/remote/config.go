package remote

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries the remote extraction endpoint settings.
type Config struct {
	BaseURL     string `toml:"base_url"`
	Model       string `toml:"model"`
	Token       string `toml:"token"`
	Timeout     int    `toml:"timeout"`
	MaxAttempts int    `toml:"max_attempts"`
}

// Env maps environment variable names onto Config fields.
type Env struct {
	BaseURL     string
	Model       string
	Token       string
	Timeout     string
	MaxAttempts string
}

// Finalize applies defaults, overlays environment variables, and validates
// the result.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()

	if env != nil {
		c.loadEnv(env)
	}

	return c.validate()
}

// Merge overlays set fields from o onto c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}

	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}

	if o.Model != "" {
		c.Model = o.Model
	}

	if o.Token != "" {
		c.Token = o.Token
	}

	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}

	if o.MaxAttempts > 0 {
		c.MaxAttempts = o.MaxAttempts
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}

	if c.Model == "" {
		c.Model = "gpt-4o-mini"
	}

	if c.Timeout <= 0 {
		c.Timeout = 120
	}

	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
}

func (c *Config) loadEnv(env *Env) {
	setString := func(key string, target *string) {
		if value := os.Getenv(key); value != "" {
			*target = value
		}
	}

	setInt := func(key string, target *int) {
		if value := os.Getenv(key); value != "" {
			if parsed, err := strconv.Atoi(value); err == nil {
				*target = parsed
			}
		}
	}

	setString(env.BaseURL, &c.BaseURL)
	setString(env.Model, &c.Model)
	setString(env.Token, &c.Token)
	setInt(env.Timeout, &c.Timeout)
	setInt(env.MaxAttempts, &c.MaxAttempts)
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("remote config: base_url is required")
	}

	if c.Model == "" {
		return fmt.Errorf("remote config: model is required")
	}

	return nil
}
