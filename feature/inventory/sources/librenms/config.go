package librenms

// Config holds configuration for the LibreNMS discovery source.
type Config struct {
	// BaseURL is the LibreNMS instance URL (e.g. https://nms.example.com).
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is the API token sent in the X-Auth-Token header.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds a single request attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the attempt budget for retryable failures.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RateLimit is requests per second against this instance. 0 disables.
	RateLimit float64 `mapstructure:"rate_limit" default:"10"`
	// VerifySSL controls TLS certificate verification.
	VerifySSL bool `mapstructure:"verify_ssl" default:"true"`
}
