package config

// WebdamConfig is the top-level configuration structure for the webdam
// CLI and libraries.
type WebdamConfig struct {
	API     APIConfig     `yaml:"api"`
	OAuth   OAuthConfig   `yaml:"oauth"`
	Browser BrowserConfig `yaml:"browser"`
}

// APIConfig carries the catalog endpoint and the service-account
// credentials used for background access.
type APIConfig struct {
	BaseURL string `yaml:"baseUrl,omitempty"` // Catalog API origin (default: https://apiv2.webdamdb.com)
	Timeout string `yaml:"timeout,omitempty"` // Per-request timeout as a Go duration (default: 30s)

	// Service-account credentials for the password grant. Leave empty to
	// require a delegated user token for every call.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// SyncInterval is how often an integrating system is expected to
	// refresh cached asset metadata. Informational; nothing in this
	// client schedules work from it.
	SyncInterval string `yaml:"syncInterval,omitempty"`
}

// OAuthConfig carries the client registration used for both the
// authorization-code flow and the password grant.
type OAuthConfig struct {
	ClientID     string `yaml:"clientId,omitempty"`
	ClientSecret string `yaml:"clientSecret,omitempty"`

	// CallbackURL is the registered redirect endpoint the authorization
	// server sends the user back to after consent.
	CallbackURL string `yaml:"callbackUrl,omitempty"`
}

// BrowserConfig tunes the interactive asset views.
type BrowserConfig struct {
	PageSize int `yaml:"pageSize,omitempty"` // Assets per page (default: 12, max: 100)
}
