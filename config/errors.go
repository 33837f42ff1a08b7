package config

import "errors"

var (
	// ErrInvalidChainID indicates the chain id is empty or malformed.
	ErrInvalidChainID = errors.New("config: invalid chain id")

	// ErrInvalidAddressFormat indicates the address format is not recognized.
	ErrInvalidAddressFormat = errors.New("config: invalid address format (must be \"plain\" or \"bsv\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")

	// ErrInvalidManifest indicates a sale manifest is malformed.
	ErrInvalidManifest = errors.New("config: invalid manifest")
)
