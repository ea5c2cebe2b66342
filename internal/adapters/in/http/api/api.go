// Package api embeds the OpenAPI document of the public HTTP surface.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
