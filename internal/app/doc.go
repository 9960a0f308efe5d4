// Package app assembles the report cleaning service: it builds the
// logger, metrics registry, clean service and HTTP server from a
// loaded configuration, and owns the start/stop lifecycle including
// graceful shutdown on SIGINT/SIGTERM.
package app
