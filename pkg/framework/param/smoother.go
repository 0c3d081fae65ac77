package param

import (
	"math"
)

// SmoothingType selects the smoothing curve.
type SmoothingType int

const (
	// LinearSmoothing reaches the target in a fixed number of samples.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole lowpass on the value.
	ExponentialSmoothing
)

// Smoother removes zipper noise from parameter changes. It holds no
// references and never allocates, so it belongs on the audio processor.
type Smoother struct {
	kind      SmoothingType
	current   float64
	target    float64
	rate      float64 // samples for linear, pole coefficient for exponential
	threshold float64
	step      float64
	active    bool
}

// NewSmoother creates a smoother. rate is a sample count for linear
// smoothing and a coefficient in (0, 1) for exponential smoothing.
func NewSmoother(kind SmoothingType, rate float64) *Smoother {
	return &Smoother{kind: kind, rate: rate, threshold: 1e-4}
}

// SetTarget starts moving towards target. Changes smaller than the
// threshold are ignored.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}
	s.target = target
	s.active = true
	if s.kind == LinearSmoothing {
		if s.rate >= 1 {
			s.step = (target - s.current) / s.rate
		} else {
			s.step = target - s.current
		}
	}
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.active {
		return s.current
	}
	switch s.kind {
	case LinearSmoothing:
		s.current += s.step
		if (s.step >= 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.settle()
		}
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.settle()
		}
	}
	return s.current
}

func (s *Smoother) settle() {
	s.current = s.target
	s.active = false
}

// Process multiplies buffer by the smoothed value sample by sample.
func (s *Smoother) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] *= float32(s.Next())
	}
}

// IsSmoothing reports whether the target has not been reached yet.
func (s *Smoother) IsSmoothing() bool { return s.active }

// Current returns the last value without advancing.
func (s *Smoother) Current() float64 { return s.current }

// Reset jumps to value.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.active = false
}

// SetRate changes the rate; it applies to the next target.
func (s *Smoother) SetRate(rate float64) { s.rate = rate }

// SetThreshold sets the distance at which smoothing is considered done.
func (s *Smoother) SetThreshold(threshold float64) { s.threshold = threshold }

// SetTime derives the rate from a duration in milliseconds. Exponential
// smoothing treats the time as the -60 dB decay.
func (s *Smoother) SetTime(sampleRate, ms float64) {
	samples := sampleRate * ms / 1000
	if samples < 1 {
		samples = 1
	}
	switch s.kind {
	case LinearSmoothing:
		s.rate = samples
	case ExponentialSmoothing:
		s.rate = math.Exp(-6.908 / samples)
	}
}

// Smoothed follows a Parameter: every Next picks up the parameter's
// current value as the target.
type Smoothed struct {
	Smoother
	param *Parameter
}

// NewSmoothed starts at the parameter's current value.
func NewSmoothed(p *Parameter, kind SmoothingType, rate float64) *Smoothed {
	s := &Smoothed{Smoother: *NewSmoother(kind, rate), param: p}
	s.Reset(p.Value())
	return s
}

// Next returns the next smoothed parameter value.
func (s *Smoothed) Next() float64 {
	s.SetTarget(s.param.Value())
	return s.Smoother.Next()
}

// Process multiplies buffer by the smoothed parameter value.
func (s *Smoothed) Process(buffer []float32) {
	for i := range buffer {
		buffer[i] *= float32(s.Next())
	}
}

// Snap jumps to the parameter's current value.
func (s *Smoothed) Snap() {
	s.Reset(s.param.Value())
}
