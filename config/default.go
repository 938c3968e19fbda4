package config

import _ "embed"

// DefaultConfigYAML is the built-in configuration, compiled into the binary
// so the server runs without any external file.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
