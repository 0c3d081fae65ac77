package stream

import (
	"github.com/agilira/go-errors"
)

// Error codes for host stream access
const (
	ErrCodeIO            = "STREAM_1001"
	ErrCodeTruncated     = "STREAM_1002"
	ErrCodeShortWrite    = "STREAM_1003"
	ErrCodeHostOverrun   = "STREAM_1004"
	ErrCodeInvalidLength = "STREAM_1005"
	ErrCodeNilStream     = "STREAM_1006"
)

// NewIOError reports a negative return from a host stream call.
func NewIOError(op string, result int64) *errors.Error {
	return errors.New(ErrCodeIO, "Host stream failure").
		WithUserMessage("The host reported an error while transferring state").
		WithContext("operation", op).
		WithContext("result", result).
		WithSeverity("error")
}

// NewTruncatedError reports that the stream ended before want bytes arrived.
func NewTruncatedError(want, got int, cause error) *errors.Error {
	return errors.Wrap(cause, ErrCodeTruncated, "Stream truncated").
		WithUserMessage("The saved state ended unexpectedly").
		WithContext("wanted_bytes", want).
		WithContext("read_bytes", got).
		WithSeverity("error")
}

// NewShortWriteError reports a host that stopped accepting bytes.
func NewShortWriteError(want, written int) *errors.Error {
	return errors.New(ErrCodeShortWrite, "Short write").
		WithUserMessage("The host stopped accepting state data").
		WithContext("wanted_bytes", want).
		WithContext("written_bytes", written).
		WithSeverity("error")
}

// NewHostOverrunError reports a host claiming more bytes than were requested.
func NewHostOverrunError(op string, requested int, reported int64) *errors.Error {
	return errors.New(ErrCodeHostOverrun, "Host reported more bytes than requested").
		WithUserMessage("The host stream returned an impossible byte count").
		WithContext("operation", op).
		WithContext("requested", requested).
		WithContext("reported", reported).
		WithSeverity("error")
}

// NewInvalidLengthError reports a corrupt length prefix.
func NewInvalidLengthError(length int64, limit int) *errors.Error {
	return errors.New(ErrCodeInvalidLength, "Invalid length prefix").
		WithUserMessage("The saved state contains a corrupt length field").
		WithContext("length", length).
		WithContext("limit", limit).
		WithSeverity("error")
}

// NewNilStreamError reports a missing host stream.
func NewNilStreamError() *errors.Error {
	return errors.New(ErrCodeNilStream, "Nil stream").
		WithUserMessage("The host passed no stream").
		WithSeverity("error")
}
