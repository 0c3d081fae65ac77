package plugin

import (
	stderrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for the runtime
const (
	// Host contract errors (1000-1099)
	ErrCodeHostContract = "HOST_1001"

	// Lifecycle errors (1000-1099)
	ErrCodeWrongState       = "LIFECYCLE_1001"
	ErrCodeActivateFailed   = "LIFECYCLE_1002"
	ErrCodeNoProcessor      = "LIFECYCLE_1003"
	ErrCodeAudioConfig      = "LIFECYCLE_1004"
	ErrCodeHookFailed       = "LIFECYCLE_1005"
	ErrCodeDestroyActivated = "LIFECYCLE_1006"

	// Runtime errors (1000-1099)
	ErrCodeStaleHandle     = "RUNTIME_1001"
	ErrCodeUnknownPlugin   = "RUNTIME_1002"
	ErrCodePanic           = "RUNTIME_1003"
	ErrCodeInvalidTemplate = "RUNTIME_1004"
	ErrCodeNilInstance     = "RUNTIME_1005"
	ErrCodeAudioFault      = "RUNTIME_1006"
	ErrCodeDuplicatePlugin = "RUNTIME_1007"
)

var errNoConstructor = stderrors.New("template has no New function")

func NewHostContractError(field, reason string) *errors.Error {
	return errors.New(ErrCodeHostContract, "Host violated the plugin protocol").
		WithUserMessage("The host passed an incomplete host table").
		WithContext("field", field).
		WithContext("reason", reason).
		WithSeverity("error")
}

func NewWrongStateError(op string, state State) *errors.Error {
	return errors.New(ErrCodeWrongState, "Lifecycle call in the wrong state").
		WithUserMessage("The host called "+op+" while the plugin was "+state.String()).
		WithContext("operation", op).
		WithContext("state", state.String()).
		WithSeverity("error")
}

func NewActivateFailedError(cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeActivateFailed, "Plugin activation failed").
		WithUserMessage("The plugin could not create its audio processor").
		WithSeverity("error")
}

func NewNoProcessorError() *errors.Error {
	return errors.New(ErrCodeNoProcessor, "Activate returned no processor").
		WithUserMessage("The plugin returned neither a processor nor an error").
		WithSeverity("error")
}

func NewAudioConfigError(cfg AudioConfig) *errors.Error {
	return errors.New(ErrCodeAudioConfig, "Invalid activation parameters").
		WithUserMessage("The host passed an unusable sample rate or block size").
		WithContext("sample_rate", cfg.SampleRate).
		WithContext("min_frames", cfg.MinFrames).
		WithContext("max_frames", cfg.MaxFrames).
		WithSeverity("error")
}

func NewHookFailedError(op string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeHookFailed, "Plugin hook failed").
		WithUserMessage("The plugin failed during "+op).
		WithContext("operation", op).
		WithSeverity("error")
}

func NewDestroyActivatedError() *errors.Error {
	return errors.New(ErrCodeDestroyActivated, "Destroy called while activated").
		WithUserMessage("The host destroyed an active plugin; it was deactivated first").
		WithSeverity("warning")
}

func NewStaleHandleError(handle uintptr) *errors.Error {
	return errors.New(ErrCodeStaleHandle, "Unknown or destroyed plugin handle").
		WithUserMessage("The host called into a plugin instance that no longer exists").
		WithContext("handle", handle).
		WithSeverity("error")
}

func NewUnknownPluginError(id string) *errors.Error {
	return errors.New(ErrCodeUnknownPlugin, "Unknown plugin id").
		WithUserMessage("The factory does not offer the requested plugin").
		WithContext("plugin_id", id).
		WithSeverity("error")
}

func NewPanicError(op string, value any) *errors.Error {
	return errors.New(ErrCodePanic, fmt.Sprintf("panic in %s: %v", op, value)).
		WithUserMessage("The plugin panicked; the call was aborted").
		WithContext("operation", op).
		WithSeverity("critical")
}

func NewInvalidTemplateError(id string, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeInvalidTemplate, "Invalid plugin template").
		WithUserMessage("A plugin template is incomplete").
		WithContext("plugin_id", id).
		WithSeverity("error")
}

func NewDuplicatePluginError(id string) *errors.Error {
	return errors.New(ErrCodeDuplicatePlugin, "Duplicate plugin id").
		WithUserMessage("Each plugin id may be offered only once per factory").
		WithContext("plugin_id", id).
		WithSeverity("error")
}

func NewNilInstanceError(id string) *errors.Error {
	return errors.New(ErrCodeNilInstance, "Template constructor returned nil").
		WithUserMessage("The plugin constructor produced no instance").
		WithContext("plugin_id", id).
		WithSeverity("error")
}

func NewAudioFaultError(faults string, cause error) *errors.Error {
	if cause == nil {
		return errors.New(ErrCodeAudioFault, "Audio thread fault").
			WithUserMessage("The audio thread reported problems: "+faults).
			WithContext("faults", faults).
			WithSeverity("warning")
	}
	return errors.Wrap(cause, ErrCodeAudioFault, "Audio thread fault").
		WithUserMessage("The audio thread reported problems: "+faults).
		WithContext("faults", faults).
		WithSeverity("warning")
}
