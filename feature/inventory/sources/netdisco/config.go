package netdisco

// Config holds configuration for the Netdisco discovery source.
type Config struct {
	// BaseURL is the Netdisco instance URL (e.g. https://netdisco.example.com).
	BaseURL string `mapstructure:"base_url" default:""`
	// Username and Password are posted to /login to obtain an API key.
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds a single request attempt.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is the attempt budget for retryable failures.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RateLimit is requests per second against this instance. 0 disables.
	RateLimit float64 `mapstructure:"rate_limit" default:"10"`
	// VerifySSL controls TLS certificate verification.
	VerifySSL bool `mapstructure:"verify_ssl" default:"true"`
}
