package debug

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ClipThreshold is the absolute sample value counted as clipping.
const ClipThreshold = 0.99

// SilenceThreshold is the RMS below which a buffer counts as silent.
const SilenceThreshold = 1e-4

// AnalysisResult summarises one audio buffer.
type AnalysisResult struct {
	Peak           float64
	RMS            float64
	DC             float64
	ClippedSamples int
	NonFinite      int // NaN and infinite samples, excluded from the other figures
	ZeroCrossings  int
}

// Clipping reports whether any sample reached ClipThreshold.
func (r AnalysisResult) Clipping() bool { return r.ClippedSamples > 0 }

// Silent reports whether the buffer's RMS is below SilenceThreshold.
func (r AnalysisResult) Silent() bool { return r.RMS < SilenceThreshold }

// Analyze measures a 32-bit buffer.
func Analyze(buffer []float32) AnalysisResult {
	var a accumulator
	for _, s := range buffer {
		a.add(float64(s))
	}
	return a.result()
}

// Analyze64 measures a 64-bit buffer.
func Analyze64(buffer []float64) AnalysisResult {
	var a accumulator
	for _, s := range buffer {
		a.add(s)
	}
	return a.result()
}

type accumulator struct {
	r          AnalysisResult
	n          int
	sum, sumSq float64
	last       float64
}

func (a *accumulator) add(s float64) {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		a.r.NonFinite++
		return
	}
	abs := math.Abs(s)
	if abs > a.r.Peak {
		a.r.Peak = abs
	}
	if abs >= ClipThreshold {
		a.r.ClippedSamples++
	}
	if a.n > 0 && (a.last < 0) != (s < 0) {
		a.r.ZeroCrossings++
	}
	a.sum += s
	a.sumSq += s * s
	a.last = s
	a.n++
}

func (a *accumulator) result() AnalysisResult {
	if a.n > 0 {
		a.r.RMS = math.Sqrt(a.sumSq / float64(a.n))
		a.r.DC = a.sum / float64(a.n)
	}
	return a.r
}

// HasNonFinite reports whether buffer holds a NaN or infinity. It does not
// allocate and is safe on the audio thread.
func HasNonFinite(buffer []float32) bool {
	for _, s := range buffer {
		// s-s is NaN for both NaN and ±Inf
		if s-s != 0 {
			return true
		}
	}
	return false
}

// HasNonFinite64 is HasNonFinite for 64-bit buffers.
func HasNonFinite64(buffer []float64) bool {
	for _, s := range buffer {
		if s-s != 0 {
			return true
		}
	}
	return false
}

// LogBufferStats logs the analysis of buffer on entry at debug level, or
// at warn level when it contains non-finite or clipped samples.
func LogBufferStats(entry *logrus.Entry, name string, buffer []float32) AnalysisResult {
	r := Analyze(buffer)
	e := entry.WithFields(logrus.Fields{
		"buffer":  name,
		"samples": len(buffer),
		"peak":    r.Peak,
		"rms":     r.RMS,
		"dc":      r.DC,
	})
	if r.NonFinite > 0 || r.Clipping() {
		e.WithField("non_finite", r.NonFinite).
			WithField("clipped", r.ClippedSamples).
			Warn("audio buffer out of range")
		return r
	}
	e.Debug("audio buffer stats")
	return r
}
