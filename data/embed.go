// Package data embeds the built-in city gazetteer.
package data

import _ "embed"

// Cities is the YAML gazetteer loaded by gazetteer.Default.
//
//go:embed cities.yaml
var Cities []byte
