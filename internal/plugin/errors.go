package plugin

import "errors"

var (
	// ErrPluginNotFound is returned when no search path holds the plugin.
	ErrPluginNotFound = errors.New("plugin: not found")

	// ErrNoEntryPoint is returned for a plugin directory without init.lua,
	// plugin.lua or a manifest naming its main file.
	ErrNoEntryPoint = errors.New("plugin: no entry point (init.lua or plugin.lua)")

	// ErrAlreadyLoaded is returned when loading a plugin twice.
	ErrAlreadyLoaded = errors.New("plugin: already loaded")

	// ErrNotLoaded is returned when unloading a plugin that is not loaded.
	ErrNotLoaded = errors.New("plugin: not loaded")

	// ErrPluginDisabled is returned when loading a disabled plugin.
	ErrPluginDisabled = errors.New("plugin: disabled")
)
