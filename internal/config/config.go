// Package config wires flags, environment and built-in defaults into a
// single configuration structure the pipeline components receive
// explicitly, so tests can inject fakes without touching the process
// environment.
package config

import (
	"github.com/spf13/viper"

	"monad-token-registry/internal/registry"
	"monad-token-registry/internal/retry"
)

// Defaults for the Monad mainnet pipeline.
const (
	DefaultChainID   = 143
	DefaultRPCURL    = "https://rpc.monad.xyz"
	DefaultRecordDir = "mainnet"

	// EnvRPCURL overrides the ledger endpoint.
	EnvRPCURL = "MONAD_RPC_URL"
)

// Fixed metadata stamped onto every generated registry.
var defaultListMeta = registry.ListMeta{
	Name:     "Monad Mainnet",
	LogoURI:  "https://raw.githubusercontent.com/monad-crypto/token-list/refs/heads/main/assets/monad.svg",
	Keywords: []string{"monad mainnet"},
	Version:  registry.Version{Major: 0, Minor: 0, Patch: 1},
}

// Config carries everything the pipeline needs injected.
type Config struct {
	ChainID   int64
	RPCURL    string
	RecordDir string
	Retry     retry.Config
	List      registry.ListMeta
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ChainID:   DefaultChainID,
		RPCURL:    DefaultRPCURL,
		RecordDir: DefaultRecordDir,
		Retry:     retry.DefaultConfig(),
		List:      defaultListMeta,
	}
}

// Load resolves configuration from v, which the CLI has bound to flags.
// Precedence: flag, then environment, then default.
func Load(v *viper.Viper) Config {
	_ = v.BindEnv("rpc_url", EnvRPCURL)

	cfg := Default()
	if url := v.GetString("rpc_url"); url != "" {
		cfg.RPCURL = url
	}
	if dir := v.GetString("record_dir"); dir != "" {
		cfg.RecordDir = dir
	}
	if n := v.GetInt("retry.max_attempts"); n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d := v.GetDuration("retry.initial_delay"); d > 0 {
		cfg.Retry.InitialDelay = d
	}
	if m := v.GetFloat64("retry.backoff_multiplier"); m > 0 {
		cfg.Retry.BackoffMultiplier = m
	}
	return cfg
}
