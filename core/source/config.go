package source

// Config holds connection settings for the source inventory API.
type Config struct {
	// URL is the base URL of the source API, including the app id path.
	URL string `mapstructure:"url" default:""`
	// Token is the source API token, sent in the "token" header.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// Insecure disables TLS certificate verification.
	Insecure bool `mapstructure:"insecure" default:"false"`
}
