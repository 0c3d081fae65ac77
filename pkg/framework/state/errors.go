package state

import (
	"github.com/agilira/go-errors"
)

const (
	ErrCodeBadMagic  = "STATE_1001"
	ErrCodeVersion   = "STATE_1002"
	ErrCodeTruncated = "STATE_1003"
	ErrCodeCorrupt   = "STATE_1004"
	ErrCodeCustom    = "STATE_1005"
	ErrCodeWrite     = "STATE_1006"
)

// NewBadMagicError reports data that is not a saved document.
func NewBadMagicError(got []byte) *errors.Error {
	return errors.New(ErrCodeBadMagic, "state does not start with the document magic").
		WithUserMessage("The saved state belongs to a different plugin or format.").
		WithContext("magic", string(got)).
		WithSeverity("error")
}

// NewVersionError reports a document written by a newer plugin.
func NewVersionError(got, supported uint32) *errors.Error {
	return errors.New(ErrCodeVersion, "state version is newer than supported").
		WithUserMessage("The state was saved by a newer version of this plugin.").
		WithContext("version", got).
		WithContext("supported_version", supported).
		WithSeverity("error")
}

// NewTruncatedError wraps a read that ended inside section.
func NewTruncatedError(section string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeTruncated, "state ended early").
		WithContext("section", section).
		WithSeverity("error")
}

// NewCorruptError reports an implausible length field.
func NewCorruptError(field string, value uint32) *errors.Error {
	return errors.New(ErrCodeCorrupt, "state field out of range").
		WithContext("field", field).
		WithContext("value", value).
		WithSeverity("error")
}

// NewCustomError wraps a failure of the plugin's custom state hook.
func NewCustomError(op string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeCustom, "custom state hook failed").
		WithContext("operation", op).
		WithSeverity("error")
}

// NewWriteError wraps a failed write of the encoded document.
func NewWriteError(cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeWrite, "cannot write state").
		WithSeverity("error")
}
