package kiotviet

import "errors"

// Config holds configuration for the KiotViet POS public API integration
type Config struct {
	// ClientID is the OAuth client identifier issued by KiotViet
	ClientID string
	// ClientSecret is the OAuth client secret issued by KiotViet
	ClientSecret string
	// Retailer is the retailer name sent on every API call
	Retailer string
	// TokenURL is the identity endpoint for client-credentials grants
	TokenURL string
	// APIBaseURL is the base URL for the public API
	APIBaseURL string
	// WebhookSecret signs inbound order-status webhooks; empty disables verification
	WebhookSecret string
	// BranchID identifies the sales branch orders belong to
	BranchID int64
	// SaleChannelID identifies the website sale channel
	SaleChannelID int64
	// CategoryAllowList restricts product sync to these remote category IDs;
	// empty means all categories are accepted
	CategoryAllowList []int64
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// DefaultTokenURL is the production identity endpoint
	DefaultTokenURL = "https://id.kiotviet.vn/connect/token"
	// DefaultAPIBaseURL is the production public API endpoint
	DefaultAPIBaseURL = "https://public.kiotapi.com"
)

// Errors for KiotViet configuration
var (
	ErrConfigMissingClientID     = errors.New("kiotviet: client ID is required")
	ErrConfigMissingClientSecret = errors.New("kiotviet: client secret is required")
	ErrConfigMissingRetailer     = errors.New("kiotviet: retailer name is required")
)

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return ErrConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrConfigMissingClientSecret
	}
	if c.Retailer == "" {
		return ErrConfigMissingRetailer
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// CategoryAllowed reports whether a remote category passes the allow-list
func (c *Config) CategoryAllowed(categoryID int64) bool {
	if len(c.CategoryAllowList) == 0 {
		return true
	}
	for _, id := range c.CategoryAllowList {
		if id == categoryID {
			return true
		}
	}
	return false
}
