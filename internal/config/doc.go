// Package config loads and validates the webdam configuration.
//
// Configuration lives in a single config.yaml under the user config
// directory (~/.config/webdam by default). A missing file is not an
// error; every setting has a usable default and credentials may also be
// supplied through WEBDAM_* environment variables.
package config
