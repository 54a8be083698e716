package fulfillment

import (
	"errors"
	"time"
)

// Errors for platform configuration
var (
	ErrConfigMissingAPIKey  = errors.New("fulfillment: api key is required")
	ErrConfigMissingBaseURL = errors.New("fulfillment: base url is required")
	ErrConfigMissingAuth    = errors.New("fulfillment: either credentials (email, password, location key) or a static token is required")
)

// Config holds configuration for the fulfillment platform API
type Config struct {
	// APIKey is the static key sent on every request
	APIKey string
	// BaseURL is the platform API root, e.g. "https://api.shipnexa.io/v1"
	BaseURL string
	// MarketplaceID identifies this storefront on the platform
	MarketplaceID string
	// DefaultShippingMethod is the numeric shipping method code used when an
	// order carries none
	DefaultShippingMethod int
	// CarrierID is an optional preferred carrier on the platform
	CarrierID string

	// AuthEmail, AuthPassword and LocationKey are the token-endpoint
	// credentials. When all three are set, tokens are fetched and cached.
	AuthEmail    string
	AuthPassword string
	LocationKey  string
	// StaticToken is the fallback bearer token used when no credentials are
	// configured
	StaticToken string

	// TokenTTL is the assumed validity of a fetched token. The platform does
	// not report an expiry, so this is a conservative guess.
	TokenTTL time.Duration
	// Timeout is the HTTP request timeout
	Timeout time.Duration

	// ExpressLeadDays is the delivery lead time for shipping method 1
	ExpressLeadDays int
	// StandardLeadDays is the delivery lead time for every other method
	StandardLeadDays int

	// Brand is the brand name stamped on every product payload
	Brand string
	// TaxRate and TaxRuleName are storefront-wide product tax settings
	TaxRate     string
	TaxRuleName string
}

// HasCredentials returns true when the token endpoint can be used
func (c *Config) HasCredentials() bool {
	return c.AuthEmail != "" && c.AuthPassword != "" && c.LocationKey != ""
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if !c.HasCredentials() && c.StaticToken == "" {
		return ErrConfigMissingAuth
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = time.Hour
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.DefaultShippingMethod == 0 {
		c.DefaultShippingMethod = 1
	}
	if c.ExpressLeadDays == 0 {
		c.ExpressLeadDays = 2
	}
	if c.StandardLeadDays == 0 {
		c.StandardLeadDays = 5
	}
	if c.TaxRate == "" {
		c.TaxRate = "20"
	}
	if c.TaxRuleName == "" {
		c.TaxRuleName = "Standard"
	}
	return nil
}
