package notification

import "time"

// Config holds configuration for the transactional mail API
type Config struct {
	// APIKey authenticates against the mail API
	APIKey string
	// BaseURL is the mail API root, e.g. "https://api.mailforge.io/v3"
	BaseURL string
	// SenderAddress is the From address on every message
	SenderAddress string
	// FromName is the human-readable sender name
	FromName string
	// AppURL is the storefront base URL linked from message bodies
	AppURL string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// MissingKeys returns the names of required settings that are unset. Callers
// run this as a pre-flight before dispatching; an empty slice means the
// transport is fully configured.
func (c *Config) MissingKeys() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.SenderAddress == "" {
		missing = append(missing, "sender_address")
	}
	if c.FromName == "" {
		missing = append(missing, "from_name")
	}
	if c.AppURL == "" {
		missing = append(missing, "app_url")
	}
	return missing
}

// applyDefaults fills in optional settings
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.mailforge.io/v3"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}
