// Package file provides the TOML configuration store.
//
// The configuration lives at ~/.friesencafe/config.toml unless the
// PORTAL_HOME environment variable or an explicit directory points
// elsewhere. The file is written with 0600 permissions.
package file
