package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the loaded configuration for values that would fail
// at first use.
func (c WebdamConfig) Validate() error {
	var errs ValidationErrors

	if c.API.BaseURL == "" {
		errs.Add("api.baseUrl", "is required")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs.Add("api.baseUrl", "must be an absolute URL", c.API.BaseURL)
	}

	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			errs.Add("api.timeout", "must be a valid duration", c.API.Timeout)
		}
	}

	if c.API.SyncInterval != "" {
		if _, err := time.ParseDuration(c.API.SyncInterval); err != nil {
			errs.Add("api.syncInterval", "must be a valid duration", c.API.SyncInterval)
		}
	}

	// Service credentials are all-or-nothing.
	if (c.API.Username == "") != (c.API.Password == "") {
		errs.Add("api.username", "username and password must be set together")
	}

	if c.OAuth.CallbackURL != "" {
		if u, err := url.Parse(c.OAuth.CallbackURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs.Add("oauth.callbackUrl", "must be an absolute URL", c.OAuth.CallbackURL)
		}
	}

	if c.Browser.PageSize < 1 || c.Browser.PageSize > 100 {
		errs.Add("browser.pageSize", "must be between 1 and 100", c.Browser.PageSize)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// RequestTimeout returns the parsed API timeout, falling back to the
// default when unset or malformed.
func (c WebdamConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// HasServiceCredentials reports whether background access with the
// shared service account is configured.
func (c WebdamConfig) HasServiceCredentials() bool {
	return c.API.Username != "" && c.API.Password != ""
}
