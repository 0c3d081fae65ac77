// Package bus describes a plugin's audio port layout and serves it to the
// host through clap.audio-ports.
package bus

import (
	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
)

// Direction represents the port direction
type Direction int32

const (
	// DirectionInput represents input ports
	DirectionInput Direction = 0
	// DirectionOutput represents output ports
	DirectionOutput Direction = 1
)

// Type represents the port role
type Type int32

const (
	// TypeMain represents the main port of a direction
	TypeMain Type = 0
	// TypeAux represents auxiliary ports such as sidechains and sends
	TypeAux Type = 1
)

// Info contains one port's configuration
type Info struct {
	Direction    Direction
	ChannelCount uint32
	Name         string
	BusType      Type
}

// PortType returns the CLAP port type for the channel count, or "" when
// no standard type applies.
func (i Info) PortType() string {
	switch i.ChannelCount {
	case 1:
		return clap.PortMono
	case 2:
		return clap.PortStereo
	}
	return ""
}

// Configuration is an immutable port layout. It implements
// extension.AudioPortsProvider.
type Configuration struct {
	inputs  []Info
	outputs []Info
	inPlace bool
}

var _ extension.AudioPortsProvider = (*Configuration)(nil)

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return NewEffectStereo()
}

// NewMonoConfiguration creates a mono I/O configuration
func NewMonoConfiguration() *Configuration {
	return NewEffectMono()
}

func (c *Configuration) ports(direction Direction) []Info {
	if direction == DirectionInput {
		return c.inputs
	}
	return c.outputs
}

// GetBusCount returns the number of ports in a direction
func (c *Configuration) GetBusCount(direction Direction) uint32 {
	return uint32(len(c.ports(direction)))
}

// GetBusInfo returns the port at index, or nil.
func (c *Configuration) GetBusInfo(direction Direction, index uint32) *Info {
	ports := c.ports(direction)
	if index >= uint32(len(ports)) {
		return nil
	}
	return &ports[index]
}

// ChannelCounts lists the channel count of every port in a direction.
func (c *Configuration) ChannelCounts(direction Direction) []uint32 {
	ports := c.ports(direction)
	counts := make([]uint32, len(ports))
	for i, p := range ports {
		counts[i] = p.ChannelCount
	}
	return counts
}

// AudioPortsCount implements extension.AudioPortsProvider.
func (c *Configuration) AudioPortsCount(isInput bool) uint32 {
	return c.GetBusCount(directionOf(isInput))
}

// AudioPortsGet implements extension.AudioPortsProvider. Port ids are the
// port index within its direction.
func (c *Configuration) AudioPortsGet(index uint32, isInput bool) (extension.AudioPortInfo, bool) {
	direction := directionOf(isInput)
	p := c.GetBusInfo(direction, index)
	if p == nil {
		return extension.AudioPortInfo{}, false
	}
	info := extension.AudioPortInfo{
		ID:           index,
		Name:         p.Name,
		ChannelCount: p.ChannelCount,
		PortType:     p.PortType(),
		InPlacePair:  clap.InvalidID,
	}
	if p.BusType == TypeMain {
		info.Flags |= clap.AudioPortIsMain
		if c.inPlace && index == 0 {
			// main ports are index 0 on both sides
			info.InPlacePair = 0
		}
	}
	return info, true
}

func directionOf(isInput bool) Direction {
	if isInput {
		return DirectionInput
	}
	return DirectionOutput
}
