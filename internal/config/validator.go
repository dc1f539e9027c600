// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` once the merged Koanf
// tree is unmarshalled, defaulted, and free of Vault references.  Any
// failure aborts startup, so the binary never runs with a mail transport
// it cannot use.
//
// Rules in play: `required`, `required_if` (host for smtp, API key for
// resend), `email`, `hostname_port`, and `oneof`.

package config

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
