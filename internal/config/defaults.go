package config

const (
	// DefaultBaseURL is the production catalog API origin.
	DefaultBaseURL = "https://apiv2.webdamdb.com"

	// DefaultTimeout bounds every catalog request.
	DefaultTimeout = "30s"

	// DefaultPageSize is the asset page size used when none is configured.
	DefaultPageSize = 12
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() WebdamConfig {
	return WebdamConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Browser: BrowserConfig{
			PageSize: DefaultPageSize,
		},
	}
}
