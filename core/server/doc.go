// Package server holds the HTTP server configuration.
//
// The start command reads Port and ApiKey from here; the API key is enforced by
// the auth middleware.
package server
