// Package api embeds the OpenAPI document of the roster JSON API.
// The HTTP server serves it at /openapi.yaml.
package api

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time
// so the served document always matches the running binary.
//
//go:embed openapi.yaml
var OpenAPI []byte
