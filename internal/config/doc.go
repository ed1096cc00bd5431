// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the serena configuration.
//
// Configuration lives in a single CUE file that is validated against an
// embedded schema and merged into Viper on top of the built-in defaults.
// When no config file exists, the defaults reproduce the behavior of the
// original launcher scripts exactly.
package config
