package extension

import (
	"github.com/agilira/go-errors"
)

// Error codes for capability binding and calls
const (
	// Registration errors (1000-1099)
	ErrCodeDuplicateExtension = "EXT_1001"
	ErrCodeNilExtension       = "EXT_1002"
	ErrCodeEmptyID            = "EXT_1003"
	ErrCodeNilTable           = "EXT_1004"

	// Call errors (1100-1199)
	ErrCodeNotActivated    = "EXT_1101"
	ErrCodeNoProvider      = "EXT_1102"
	ErrCodeNilArgument     = "EXT_1103"
	ErrCodeProviderFailure = "EXT_1104"
)

func NewDuplicateExtensionError(id string) *errors.Error {
	return errors.New(ErrCodeDuplicateExtension, "Duplicate extension").
		WithUserMessage("Each extension id may be registered only once").
		WithContext("extension_id", id).
		WithSeverity("error")
}

func NewNilExtensionError(index int) *errors.Error {
	return errors.New(ErrCodeNilExtension, "Nil extension").
		WithUserMessage("Extension list contains a nil entry").
		WithContext("index", index).
		WithSeverity("error")
}

func NewEmptyIDError(index int) *errors.Error {
	return errors.New(ErrCodeEmptyID, "Empty extension id").
		WithUserMessage("Extension ids must not be empty").
		WithContext("index", index).
		WithSeverity("error")
}

func NewNilTableError(id string) *errors.Error {
	return errors.New(ErrCodeNilTable, "Extension produced no table").
		WithUserMessage("Extension Bind returned nil").
		WithContext("extension_id", id).
		WithSeverity("error")
}

func NewNotActivatedError(op string) *errors.Error {
	return errors.New(ErrCodeNotActivated, "Capability requires an active plugin").
		WithUserMessage("The host called a capability that is only valid while activated").
		WithContext("operation", op).
		WithSeverity("warning")
}

func NewNoProviderError(op string) *errors.Error {
	return errors.New(ErrCodeNoProvider, "Capability not implemented by plugin").
		WithUserMessage("The plugin does not implement the requested capability").
		WithContext("operation", op).
		WithSeverity("warning")
}

func NewNilArgumentError(op, arg string) *errors.Error {
	return errors.New(ErrCodeNilArgument, "Host passed a nil argument").
		WithUserMessage("The host passed a required pointer as nil").
		WithContext("operation", op).
		WithContext("argument", arg).
		WithSeverity("error")
}

func NewProviderFailureError(op string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeProviderFailure, "Capability call failed").
		WithUserMessage("The plugin failed to complete a capability call").
		WithContext("operation", op).
		WithSeverity("error")
}
