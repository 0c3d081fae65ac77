package bus

import "strconv"

// NewEffectStereo creates a stereo effect layout that may run in place.
func NewEffectStereo() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		InPlace().
		MustBuild()
}

// NewEffectMono creates a mono effect layout that may run in place.
func NewEffectMono() *Configuration {
	return NewBuilder().
		WithMonoInput("Mono In").
		WithMonoOutput("Mono Out").
		InPlace().
		MustBuild()
}

// NewEffectStereoSidechain creates a stereo effect with a sidechain input.
func NewEffectStereoSidechain() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		WithSidechain("Sidechain In").
		MustBuild()
}

// NewMonoToStereo creates a mono-to-stereo effect layout.
func NewMonoToStereo() *Configuration {
	return NewBuilder().
		WithMonoInput("Mono In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewInstrument creates a generator layout with no audio input.
func NewInstrument() *Configuration {
	return NewBuilder().
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// NewSurround5_1Effect creates a 5.1 surround effect layout.
func NewSurround5_1Effect() *Configuration {
	return NewBuilder().
		WithAudioInput("5.1 In", 6).
		WithAudioOutput("5.1 Out", 6).
		MustBuild()
}

// NewMixerChannel creates a stereo channel with numSends stereo sends.
func NewMixerChannel(numSends int) *Configuration {
	b := NewBuilder().
		WithStereoInput("Channel In").
		WithStereoOutput("Main Out")
	for i := 0; i < numSends; i++ {
		b = b.WithAuxOutput("Send "+strconv.Itoa(i+1), 2)
	}
	return b.MustBuild()
}
