// Package dam is a typed facade over the Webdam digital-asset-management
// REST API.
//
// The client exposes folder browsing, asset retrieval, search and account
// subscription metadata as named, typed operations. It is parameterized at
// construction by a credential mode: ServiceCredentials for background
// access with the shared service account, or DelegatedToken for calls on
// behalf of an end user who authorized via the OAuth broker.
//
// Every operation is a synchronous request/response unit of work with a
// bounded timeout. The client holds no mutable state across calls apart
// from the cached service token, so instances are safe for concurrent use.
// Failures are reported through the typed errors in errors.go; nothing is
// retried automatically.
package dam
