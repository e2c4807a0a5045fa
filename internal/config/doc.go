// Package config resolves runtime configuration from built-in defaults, an
// optional YAML file, and GROUPS_CATALOG_* environment variables, in that
// order of increasing precedence.
package config
