// Package logging provides structured, subsystem-tagged logging for webdam.
//
// The package wraps Go's standard slog package with level filtering and a
// small formatted-message API. Every log entry carries a subsystem
// identifier so that log aggregation can separate, for example, OAuth
// traffic from catalog traffic.
//
// Initialize once at startup:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
// then log from anywhere:
//
//	logging.Info("Catalog", "Fetched folder %s", folderID)
//	logging.Error("OAuth", err, "Token exchange failed")
//
// Subsystems in use: Bootstrap, Config, OAuth, Catalog, Browser, CLI.
//
// The package is safe for concurrent use from multiple goroutines.
package logging
