// internal/config/secrets.go
//
// Vault reference resolution for secret-bearing fields.

package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/vault"
)

// SecretResolver turns a `vault:` reference into its value.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

type resolverFactory func(ctx context.Context) (SecretResolver, error)

func newVaultResolver(context.Context) (SecretResolver, error) {
	return vault.New(zap.S())
}

// resolveSecrets replaces every referenced secret in place.  The resolver
// is built lazily so plain deployments never need VAULT_ADDR.
func resolveSecrets(ctx context.Context, cfg *Config, factory resolverFactory) error {
	fields := []struct {
		key string
		val *string
	}{
		{"http.form_key", &cfg.HTTP.FormKey},
		{"mail.username", &cfg.Mail.Username},
		{"mail.password", &cfg.Mail.Password},
		{"mail.resend_api_key", &cfg.Mail.ResendAPIKey},
	}

	var r SecretResolver
	for _, f := range fields {
		if !vault.IsRef(*f.val) {
			continue
		}
		if r == nil {
			var err error
			if r, err = factory(ctx); err != nil {
				return fmt.Errorf("vault client: %w", err)
			}
		}
		v, err := r.Resolve(ctx, *f.val)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.val = v
	}
	return nil
}
