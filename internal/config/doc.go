// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the appcrate configuration. Settings
// come from a TOML file in the platform config directory, with APPCRATE_*
// environment variables layered on top and built-in defaults underneath.
package config
