package target

// Config holds connection settings for the target inventory API.
type Config struct {
	// URL is the base URL of the target system, without the /api suffix.
	URL string `mapstructure:"url" default:""`
	// Token is the target API token.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Insecure disables TLS certificate verification.
	Insecure bool `mapstructure:"insecure" default:"false"`
}
