package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bitfsorg/libmint-go/address"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if err := validateChainID(cfg.ChainID); err != nil {
		return err
	}

	if _, err := address.ForFormat(cfg.AddressFormat); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddressFormat, cfg.AddressFormat)
	}

	if _, ok := logLevels[strings.ToLower(cfg.LogLevel)]; !ok {
		return ErrInvalidLogLevel
	}

	return nil
}

// Level returns the slog level named by cfg.LogLevel, defaulting to info.
func (cfg Config) Level() slog.Level {
	if l, ok := logLevels[strings.ToLower(cfg.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// validateChainID accepts lowercase letters, digits, '-' and '_'.
func validateChainID(id string) error {
	if id == "" || len(id) > 64 {
		return fmt.Errorf("%w: %q", ErrInvalidChainID, id)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidChainID, id)
		}
	}
	return nil
}
