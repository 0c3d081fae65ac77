package process

// ProcessChannels calls fn for every channel the main input and output ports
// have in common. 64-bit only blocks are skipped.
func (v *View) ProcessChannels(fn func(ch uint32, input, output []float32)) {
	in, okIn := v.TryAudioInput(0)
	out, okOut := v.TryAudioOutput(0)
	if !okIn || !okOut || !in.Has32() || !out.Has32() {
		return
	}
	n := min(in.ChannelCount(), out.ChannelCount())
	for ch := range n {
		fn(ch, in.UncheckedChannel32(ch), out.UncheckedChannel32(ch))
	}
}

// ProcessStereo is ProcessChannels limited to two channels.
func (v *View) ProcessStereo(fn func(ch uint32, input, output []float32)) {
	in, okIn := v.TryAudioInput(0)
	out, okOut := v.TryAudioOutput(0)
	if !okIn || !okOut || !in.Has32() || !out.Has32() {
		return
	}
	n := min(in.ChannelCount(), out.ChannelCount(), 2)
	for ch := range n {
		fn(ch, in.UncheckedChannel32(ch), out.UncheckedChannel32(ch))
	}
}

// ProcessMono processes only the first channel of the main ports.
func (v *View) ProcessMono(fn func(input, output []float32)) {
	in, okIn := v.TryAudioInput(0)
	out, okOut := v.TryAudioOutput(0)
	if !okIn || !okOut {
		return
	}
	i, ok1 := in.TryChannel32(0)
	o, ok2 := out.TryChannel32(0)
	if ok1 && ok2 {
		fn(i, o)
	}
}

// PassThrough copies every input port to the output port with the same index
// (for bypass). Channels without a counterpart are left untouched.
func (v *View) PassThrough() {
	ports := min(v.AudioInputCount(), v.AudioOutputCount())
	for k := range ports {
		in, out := v.AudioInput(k), v.AudioOutput(k)
		n := min(in.ChannelCount(), out.ChannelCount())
		for ch := range n {
			if src, ok := in.TryChannel32(ch); ok {
				if dst, ok := out.TryChannel32(ch); ok {
					copy(dst, src)
					continue
				}
			}
			if src, ok := in.TryChannel64(ch); ok {
				if dst, ok := out.TryChannel64(ch); ok {
					copy(dst, src)
				}
			}
		}
	}
}

// ClearOutputs zeros every output channel.
func (v *View) ClearOutputs() {
	for k := range v.AudioOutputCount() {
		out := v.AudioOutput(k)
		for ch := range out.ChannelCount() {
			if s, ok := out.TryChannel32(ch); ok {
				clear(s)
			}
			if s, ok := out.TryChannel64(ch); ok {
				clear(s)
			}
		}
	}
}
