package main

import (
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/eth2030/ethutil/log"
)

// Configuration errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config holds the settings shared by every subcommand. Values come from
// the defaults, then an optional TOML file, then command-line flags.
type Config struct {
	// ChainID selects EIP-155 V values and EIP-1191 checksums. Decimal;
	// empty means no chain id.
	ChainID string `toml:"chain_id"`

	// Homestead rejects high-s signatures when validating (EIP-2).
	Homestead bool `toml:"homestead"`

	// Verbosity is the log level, 0-5.
	Verbosity int `toml:"verbosity"`

	// LogFormat is one of terminal, logfmt or json.
	LogFormat string `toml:"log_format"`
}

// DefaultConfig returns the configuration used when neither a file nor flags
// override a value.
func DefaultConfig() Config {
	return Config{
		Homestead: true,
		Verbosity: 2,
		LogFormat: log.FormatTerminal,
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig. An empty path
// returns the defaults. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(ErrConfigFileNotFound, path)
		}
		return cfg, errors.Wrapf(ErrInvalidConfig, "parse %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.Wrapf(ErrInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := c.ChainIDBig(); err != nil {
		return err
	}
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return errors.Wrapf(ErrInvalidConfig, "verbosity must be 0-5, got %d", c.Verbosity)
	}
	switch c.LogFormat {
	case log.FormatTerminal, log.FormatLogfmt, log.FormatJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log format %q", c.LogFormat)
	}
	return nil
}

// ChainIDBig parses ChainID. It returns nil when no chain id is set.
func (c Config) ChainIDBig() (*big.Int, error) {
	if c.ChainID == "" {
		return nil, nil
	}
	id, ok := new(big.Int).SetString(c.ChainID, 10)
	if !ok || id.Sign() < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "chain id must be a non-negative decimal integer, got %q", c.ChainID)
	}
	return id, nil
}
