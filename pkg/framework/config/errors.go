package config

import (
	"github.com/agilira/go-errors"
)

const (
	ErrCodeFile       = "CONFIG_1001"
	ErrCodeFormat     = "CONFIG_1002"
	ErrCodeParse      = "CONFIG_1003"
	ErrCodeValidation = "CONFIG_1004"
)

// NewFileError wraps a failure to read the config file.
func NewFileError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeFile, "cannot read config file").
		WithContext("path", path).
		WithSeverity("error")
}

// NewFormatError reports an extension argus does not map to a supported
// format.
func NewFormatError(path, format string) *errors.Error {
	return errors.New(ErrCodeFormat, "unsupported config format").
		WithUserMessage("Use a .yaml, .toml or .json config file.").
		WithContext("path", path).
		WithContext("format", format).
		WithSeverity("error")
}

// NewParseError wraps a decoding failure.
func NewParseError(path string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeParse, "cannot parse config file").
		WithContext("path", path).
		WithSeverity("error")
}

// NewValidationError reports an unusable setting.
func NewValidationError(key, value string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeValidation, "invalid config value").
		WithContext("key", key).
		WithContext("value", value).
		WithSeverity("error")
}
