package cmd

import (
	"fmt"

	"webdam/internal/cli"
	"webdam/internal/config"
	"webdam/internal/dam"
	"webdam/internal/oauth"
)

// loadConfig resolves the config directory and loads a validated
// configuration from it.
func loadConfig() (config.WebdamConfig, string, error) {
	dir := configPath
	if dir == "" {
		dir = config.GetDefaultConfigPathOrPanic()
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return config.WebdamConfig{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.WebdamConfig{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, dir, nil
}

// newCatalogClient builds the catalog client for the selected credential
// mode: the stored user token with --as-user, the configured service
// account otherwise.
func newCatalogClient() (*dam.Client, config.WebdamConfig, error) {
	cfg, dir, err := loadConfig()
	if err != nil {
		return nil, config.WebdamConfig{}, err
	}

	damCfg := dam.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.RequestTimeout(),
	}

	var creds dam.CredentialSource
	if asUser {
		token, err := cli.NewTokenStore(dir).Load(cfg.API.BaseURL)
		if err != nil {
			return nil, config.WebdamConfig{}, err
		}
		creds = &dam.DelegatedToken{Token: token}
	} else {
		if !cfg.HasServiceCredentials() {
			return nil, config.WebdamConfig{}, &cli.AuthRequiredError{Endpoint: cfg.API.BaseURL}
		}
		creds = dam.NewServiceCredentials(damCfg,
			cfg.API.Username, cfg.API.Password,
			cfg.OAuth.ClientID, cfg.OAuth.ClientSecret)
	}

	return dam.NewClient(damCfg, creds), cfg, nil
}

// newBroker builds the OAuth broker from the configured client
// registration.
func newBroker(cfg config.WebdamConfig) (*oauth.Broker, error) {
	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		return nil, fmt.Errorf("oauth.clientId and oauth.clientSecret must be configured for user login")
	}
	return oauth.NewBroker(oauth.Config{
		BaseURL:      cfg.API.BaseURL,
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		CallbackURL:  cfg.OAuth.CallbackURL,
	}, nil), nil
}
