// Package server holds the serve mode HTTP configuration.
//
// While cmd/serve.go handles the server startup, this package defines the
// configuration structure: listen port, the API key protecting the report
// endpoints, and the TTL of the store snapshot cache.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the serve command to configure Fiber.
package server
