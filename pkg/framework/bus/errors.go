package bus

import (
	"github.com/agilira/go-errors"
)

const (
	ErrCodeNoMainOutput   = "BUS_1001"
	ErrCodeChannelCount   = "BUS_1002"
	ErrCodeMainNotFirst   = "BUS_1003"
	ErrCodeInPlaceInvalid = "BUS_1004"
)

// MaxChannels bounds the channel count of a single port.
const MaxChannels = 32

// NewNoMainOutputError reports a layout that produces no audio.
func NewNoMainOutputError() *errors.Error {
	return errors.New(ErrCodeNoMainOutput, "configuration must have a main output port").
		WithSeverity("error")
}

// NewChannelCountError reports a port with zero or too many channels.
func NewChannelCountError(name string, channels uint32) *errors.Error {
	return errors.New(ErrCodeChannelCount, "invalid channel count").
		WithContext("port", name).
		WithContext("channels", channels).
		WithContext("max_channels", MaxChannels).
		WithSeverity("error")
}

// NewMainNotFirstError reports a main port that is not at index 0.
func NewMainNotFirstError(name string, index int) *errors.Error {
	return errors.New(ErrCodeMainNotFirst, "main port must be the first port of its direction").
		WithContext("port", name).
		WithContext("index", index).
		WithSeverity("error")
}

// NewInPlaceError reports an in-place request the layout cannot honour.
func NewInPlaceError() *errors.Error {
	return errors.New(ErrCodeInPlaceInvalid, "in-place processing needs matching main input and output").
		WithSeverity("error")
}
