// Package cli provides shared infrastructure for the webdam command-line
// interface: token persistence between invocations, the auth error types
// the commands map to exit codes, and table/spinner output helpers.
package cli
