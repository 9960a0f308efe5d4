// Package http implements the HTTP transport for the report cleaning
// service. Handlers stay thin: they parse the multipart upload, call
// the clean service, and shape the response. All cleaning logic lives
// in the service and pipeline layers.
//
// A request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → CleanService → Pipeline
//
// Errors surface as the standard JSON envelope produced by the errors
// package; successful /api/clean responses are xlsx attachments with
// the run summary mirrored into X-* headers.
package http
