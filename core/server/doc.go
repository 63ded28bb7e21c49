// Package server holds the HTTP server configuration.
//
// The start command serves the content store over HTTP; this package only
// defines the settings it needs (port, API key, body limit) and their
// validation.
package server
