// internal/config/loader_test.go

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const baseYAML = `
http:
  listen_addr: "127.0.0.1:9090"
mail:
  host: smtp.yaml.example.com
  from_address: noreply@example.com
  operator_address: office@example.com
  timeout: 15s
`

// scrubEnv clears every variable the loader reads and restores it after
// the test.  godotenv writes straight to the process env, so keys it may
// set are registered too.
func scrubEnv(t *testing.T, extra ...string) {
	t.Helper()
	keys := append([]string{
		"FEEDBACK_HTTP__LISTEN_ADDR", "FEEDBACK_MAIL__HOST", "FEEDBACK_MAIL__PASSWORD",
		"FEEDBACK_MAIL__TRANSPORT", "FEEDBACK_MAIL__RESEND_API_KEY", "FEEDBACK_MAIL__OPERATOR_ADDRESS",
	}, extra...)
	for k := range legacyEnv {
		keys = append(keys, k)
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeRoot(t *testing.T, yaml, dotenv string) string {
	t.Helper()
	root := t.TempDir()
	conf := filepath.Join(root, "conf")
	if err := os.MkdirAll(conf, 0o755); err != nil {
		t.Fatal(err)
	}
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(conf, "global.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if dotenv != "" {
		if err := os.WriteFile(filepath.Join(conf, ".env"), []byte(dotenv), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func noVault(context.Context) (SecretResolver, error) {
	return nil, errors.New("vault not expected")
}

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := f[ref]
	if !ok {
		return "", errors.New("unknown ref")
	}
	return v, nil
}

func TestLoadDefaults(t *testing.T) {
	scrubEnv(t)
	root := writeRoot(t, baseYAML, "")

	cfg, err := load(context.Background(), root, noVault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9090" {
		t.Fatalf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Mail.Transport != "smtp" || cfg.Mail.FromName != "Garden Services Feedback" {
		t.Fatalf("mail defaults = %+v", cfg.Mail)
	}
	if cfg.Mail.Timeout != 15*time.Second {
		t.Fatalf("timeout = %v", cfg.Mail.Timeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Dir != filepath.Join(root, "logs") {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("root = %q", cfg.Paths.Root)
	}
	if Get() != cfg {
		t.Fatal("Get does not return the loaded config")
	}
}

func TestLoadEnvLayers(t *testing.T) {
	scrubEnv(t)
	root := writeRoot(t, baseYAML, "")

	t.Setenv("SMTP_HOST", "smtp.legacy.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("SEND_CONFIRMATION", "true")
	t.Setenv("ENQUIRY_TO_EMAIL", "legacy-office@example.com")
	t.Setenv("FEEDBACK_MAIL__HOST", "smtp.env.example.com")

	cfg, err := load(context.Background(), root, noVault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mail.Host != "smtp.env.example.com" {
		t.Fatalf("host = %q, want prefixed override", cfg.Mail.Host)
	}
	if cfg.Mail.Port != 465 || !cfg.Mail.Secure || !cfg.Mail.SendConfirmation {
		t.Fatalf("legacy keys not applied: %+v", cfg.Mail)
	}
	if cfg.Mail.OperatorAddress != "legacy-office@example.com" {
		t.Fatalf("operator = %q", cfg.Mail.OperatorAddress)
	}
}

func TestLoadDotEnvWithoutYAML(t *testing.T) {
	scrubEnv(t)
	root := writeRoot(t, "", "FEEDBACK_MAIL__TRANSPORT=log\nFROM_EMAIL=noreply@example.com\nENQUIRY_TO_EMAIL=office@example.com\n")

	cfg, err := load(context.Background(), root, noVault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mail.Transport != "log" || cfg.HTTP.ListenAddr != ":8080" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadVaultReferences(t *testing.T) {
	scrubEnv(t)
	root := writeRoot(t, baseYAML, "")
	t.Setenv("FEEDBACK_MAIL__PASSWORD", "vault:secret/feedback/smtp#password")

	calls := 0
	factory := func(context.Context) (SecretResolver, error) {
		calls++
		return fakeResolver{"vault:secret/feedback/smtp#password": "hunter2"}, nil
	}
	cfg, err := load(context.Background(), root, factory)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mail.Password != "hunter2" || calls != 1 {
		t.Fatalf("password = %q, factory calls = %d", cfg.Mail.Password, calls)
	}

	t.Setenv("FEEDBACK_MAIL__PASSWORD", "vault:secret/feedback/smtp#other")
	if _, err := load(context.Background(), root, factory); err == nil {
		t.Fatal("unresolvable reference should fail")
	}
}

func TestLoadTrustedProxies(t *testing.T) {
	scrubEnv(t)
	yaml := `
http:
  listen_addr: "127.0.0.1:9090"
  trusted_proxies: ["10.0.0.0/8", "127.0.0.1"]
mail:
  host: smtp.yaml.example.com
  from_address: noreply@example.com
  operator_address: office@example.com
`
	cfg, err := load(context.Background(), writeRoot(t, yaml, ""), noVault)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.HTTP.TrustedProxies) != 2 || cfg.HTTP.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("trusted_proxies = %v", cfg.HTTP.TrustedProxies)
	}

	bad := strings.Replace(yaml, `"127.0.0.1"`, `"proxy.local"`, 1)
	if _, err := load(context.Background(), writeRoot(t, bad, ""), noVault); err == nil {
		t.Fatal("hostname in trusted_proxies should fail validation")
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"resend without key", map[string]string{"FEEDBACK_MAIL__TRANSPORT": "resend"}},
		{"unknown transport", map[string]string{"FEEDBACK_MAIL__TRANSPORT": "pigeon"}},
		{"bad operator address", map[string]string{"FEEDBACK_MAIL__OPERATOR_ADDRESS": "not-an-email"}},
		{"bad listen addr", map[string]string{"FEEDBACK_HTTP__LISTEN_ADDR": "nowhere"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scrubEnv(t)
			root := writeRoot(t, baseYAML, "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := load(context.Background(), root, noVault); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
