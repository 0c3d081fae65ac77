package param

import (
	"github.com/agilira/go-errors"
)

const (
	ErrCodeDuplicateID  = "PARAM_1001"
	ErrCodeInvalidRange = "PARAM_1002"
	ErrCodeParse        = "PARAM_1003"
	ErrCodeUnknownID    = "PARAM_1004"
)

// NewDuplicateIDError reports two parameters sharing an id.
func NewDuplicateIDError(id uint32, name string) *errors.Error {
	return errors.New(ErrCodeDuplicateID, "parameter id already registered").
		WithUserMessage("Two parameters use the same id.").
		WithContext("param_id", id).
		WithContext("param_name", name).
		WithSeverity("error")
}

// NewInvalidRangeError reports a parameter whose bounds or default are unusable.
func NewInvalidRangeError(p *Parameter) *errors.Error {
	return errors.New(ErrCodeInvalidRange, "parameter range is invalid").
		WithContext("param_id", p.ID).
		WithContext("min", p.Min).
		WithContext("max", p.Max).
		WithContext("default", p.DefaultValue).
		WithSeverity("error")
}

// NewParseError wraps a failed text conversion.
func NewParseError(id uint32, text string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeParse, "cannot parse parameter text").
		WithContext("param_id", id).
		WithContext("text", text).
		WithSeverity("warning")
}

// NewUnknownIDError reports a lookup of an unregistered parameter.
func NewUnknownIDError(id uint32) *errors.Error {
	return errors.New(ErrCodeUnknownID, "unknown parameter id").
		WithContext("param_id", id).
		WithSeverity("warning")
}
