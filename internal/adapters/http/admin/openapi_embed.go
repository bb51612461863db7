package admin

import _ "embed"

// OpenAPI contains the embedded OpenAPI YAML document for the public API.
//
//go:embed openapi.yaml
var OpenAPI []byte
