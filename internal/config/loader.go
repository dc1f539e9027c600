// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from four layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. Optional `conf/global.yaml`.
  3. The bare keys older deployments set (`SMTP_HOST`, `SMTP_PORT`,
     `SMTP_SECURE`, `SMTP_USER`, `SMTP_PASS`, `FROM_EMAIL`,
     `ENQUIRY_TO_EMAIL`, `SEND_CONFIRMATION`).
  4. Environment variables prefixed `FEEDBACK_`, where `__` maps to “.”
     (e.g., `FEEDBACK_MAIL__HOST → mail.host`).

After merging, the tree is unmarshalled into strongly-typed structs,
defaulted, stripped of Vault references, validated, enriched with the
runtime root path, and cached in an `atomic.Pointer` for lock-free reads.
`Reload()` simply runs the pipeline again and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans – root discovery, YAML read, env overlay.
  • ERROR spans – YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  – final “config loaded” with key highlights (never secrets).
  • Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface before the file logger is installed.
*/
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "FEEDBACK_"

var current atomic.Pointer[Config]

// legacyEnv maps bare variable names onto config keys.
var legacyEnv = map[string]string{
	"SMTP_HOST":         "mail.host",
	"SMTP_PORT":         "mail.port",
	"SMTP_SECURE":       "mail.secure",
	"SMTP_USER":         "mail.username",
	"SMTP_PASS":         "mail.password",
	"FROM_EMAIL":        "mail.from_address",
	"ENQUIRY_TO_EMAIL":  "mail.operator_address",
	"SEND_CONFIRMATION": "mail.send_confirmation",
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves FEEDBACK_ROOT or climbs directories until a `conf`
// directory is found.  Falls back to the executable heuristic for the
// production layout, then the working directory.
func rootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if fi, err := os.Stat(filepath.Join(dir, "conf")); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads every layer, resolves Vault references, validates, and caches
// the result.  A Vault client is only created when a reference is present.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, rootDir(), newVaultResolver)
}

func load(ctx context.Context, root string, resolver resolverFactory) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	// Legacy keys: SMTP_HOST → mail.host.  Unknown names map to "" and
	// are skipped by the provider.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		zap.S().Errorw("config legacy env overlay failed", "err", err)
		return nil, err
	}

	// Env overrides: FEEDBACK_MAIL__HOST → mail.host
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		if s == "ROOT" {
			return ""
		}
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	cfg.defaults()
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(root, "logs")
	}

	if err := resolveSecrets(ctx, &cfg, resolver); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"mail_transport", cfg.Mail.Transport,
		"send_confirmation", cfg.Mail.SendConfirmation,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context) error { _, err := Load(ctx); return err }
