// Package config holds the application configuration and assembles it from
// layered sources.
//
// Layers are applied in order, later ones winning key by key: built-in
// defaults, then each configuration file (TOML or YAML), then environment
// variables prefixed with RICHTEXT_. The merged tree is decoded into a
// typed Config and validated.
//
// # Live Reload
//
// Manager.Watch reloads the configuration when a file changes and notifies
// subscribers with the old and new values. A reload that fails to parse or
// validate keeps the previous configuration.
package config
