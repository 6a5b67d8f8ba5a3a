// Package server holds the HTTP server configuration.
//
// While the serve command handles the actual startup, this package defines
// the configuration structure: the listen port and the API key guarding
// the endpoints.
package server
