// Package plugin discovers Lua plugins on disk and manages their
// lifetime against a dispatcher.
//
// A plugin is either a single file or a directory:
//
//	plugins/wrap.lua
//	plugins/smart-tab/
//	├── plugin.json      # optional manifest
//	└── init.lua         # entry point
//
// The manifest names the plugin, its entry point and any key bindings it
// contributes:
//
//	{
//	  "name": "smart-tab",
//	  "version": "1.0.0",
//	  "main": "init.lua",
//	  "keybindings": [
//	    {"keys": "Ctrl+t", "command": "smartTab"}
//	  ]
//	}
//
// Manager loads every discovered plugin that is not disabled into its own
// sandboxed interpreter (see package plugin/lua) and exposes the
// contributed bindings as keymaps.
package plugin
