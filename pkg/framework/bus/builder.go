package bus

// Builder provides a fluent API for building port layouts
type Builder struct {
	config *Configuration
}

// NewBuilder creates a new port layout builder
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) add(d Direction, t Type, name string, channels uint32) *Builder {
	info := Info{Direction: d, ChannelCount: channels, Name: name, BusType: t}
	if d == DirectionInput {
		b.config.inputs = append(b.config.inputs, info)
	} else {
		b.config.outputs = append(b.config.outputs, info)
	}
	return b
}

// WithAudioInput adds the main audio input
func (b *Builder) WithAudioInput(name string, channels uint32) *Builder {
	return b.add(DirectionInput, TypeMain, name, channels)
}

// WithAudioOutput adds the main audio output
func (b *Builder) WithAudioOutput(name string, channels uint32) *Builder {
	return b.add(DirectionOutput, TypeMain, name, channels)
}

// WithAuxInput adds an auxiliary audio input (e.g., sidechain)
func (b *Builder) WithAuxInput(name string, channels uint32) *Builder {
	return b.add(DirectionInput, TypeAux, name, channels)
}

// WithAuxOutput adds an auxiliary audio output
func (b *Builder) WithAuxOutput(name string, channels uint32) *Builder {
	return b.add(DirectionOutput, TypeAux, name, channels)
}

// WithStereoInput is a convenience method for adding stereo input
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, 2)
}

// WithStereoOutput is a convenience method for adding stereo output
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 2)
}

// WithMonoInput is a convenience method for adding mono input
func (b *Builder) WithMonoInput(name string) *Builder {
	return b.WithAudioInput(name, 1)
}

// WithMonoOutput is a convenience method for adding mono output
func (b *Builder) WithMonoOutput(name string) *Builder {
	return b.WithAudioOutput(name, 1)
}

// WithSidechain adds a stereo auxiliary input
func (b *Builder) WithSidechain(name string) *Builder {
	return b.WithAuxInput(name, 2)
}

// InPlace declares that the main input and output may share buffers.
func (b *Builder) InPlace() *Builder {
	b.config.inPlace = true
	return b
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	c := b.config
	if len(c.outputs) == 0 || c.outputs[0].BusType != TypeMain {
		return NewNoMainOutputError()
	}
	for _, ports := range [][]Info{c.inputs, c.outputs} {
		for i, p := range ports {
			if p.ChannelCount == 0 || p.ChannelCount > MaxChannels {
				return NewChannelCountError(p.Name, p.ChannelCount)
			}
			if p.BusType == TypeMain && i != 0 {
				return NewMainNotFirstError(p.Name, i)
			}
		}
	}
	if c.inPlace {
		if len(c.inputs) == 0 || c.inputs[0].BusType != TypeMain ||
			c.inputs[0].ChannelCount != c.outputs[0].ChannelCount {
			return NewInPlaceError()
		}
	}
	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
