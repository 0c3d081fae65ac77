package param

import (
	"math"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// GainFloor is the level shown as silence by Gain parameters.
const GainFloor = -60.0

// Format pairs a display formatter with its parser.
type Format struct {
	Text  func(float64) string
	Parse func(string) (float64, error)
}

// Decibels formats dB values; anything at or below floor reads "-inf dB".
func Decibels(floor float64) Format {
	return Format{
		Text: func(db float64) string {
			if db <= floor {
				return "-inf dB"
			}
			return strconv.FormatFloat(db, 'f', 1, 64) + " dB"
		},
		Parse: func(s string) (float64, error) {
			l := strings.ToLower(strings.TrimSpace(s))
			if strings.Contains(l, "inf") || strings.Contains(l, "∞") {
				return floor, nil
			}
			return parseNumber(l, "db")
		},
	}
}

// DecibelToLinear converts a level in dB to a linear factor. Levels at or
// below GainFloor map to zero.
func DecibelToLinear(db float64) float64 {
	if db <= GainFloor {
		return 0
	}
	return math.Pow(10, db/20)
}

var (
	// Percent formats 0-100 values.
	Percent = Format{
		Text: func(v float64) string {
			return strconv.FormatFloat(v, 'f', 0, 64) + "%"
		},
		Parse: func(s string) (float64, error) { return parseNumber(s, "%") },
	}

	// Frequency formats Hz values, switching to kHz from 1000 Hz.
	Frequency = Format{
		Text: func(hz float64) string {
			if hz >= 1000 {
				return strconv.FormatFloat(hz/1000, 'f', 2, 64) + " kHz"
			}
			return strconv.FormatFloat(hz, 'f', 1, 64) + " Hz"
		},
		Parse: func(s string) (float64, error) {
			l := strings.ToLower(strings.TrimSpace(s))
			if strings.HasSuffix(l, "khz") {
				v, err := parseNumber(l, "khz")
				return v * 1000, err
			}
			return parseNumber(l, "hz")
		},
	}

	// Milliseconds formats time values given in ms.
	Milliseconds = Format{
		Text: func(ms float64) string {
			if ms >= 1000 {
				return strconv.FormatFloat(ms/1000, 'f', 2, 64) + " s"
			}
			return strconv.FormatFloat(ms, 'f', 1, 64) + " ms"
		},
		Parse: func(s string) (float64, error) {
			l := strings.ToLower(strings.TrimSpace(s))
			if strings.HasSuffix(l, "ms") {
				return parseNumber(l, "ms")
			}
			if strings.HasSuffix(l, "s") {
				v, err := parseNumber(l, "s")
				return v * 1000, err
			}
			return parseNumber(l, "")
		},
	}

	// OnOff formats toggles.
	OnOff = Format{
		Text: func(v float64) string {
			if v >= 0.5 {
				return "On"
			}
			return "Off"
		},
		Parse: func(s string) (float64, error) {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "on", "yes", "true", "1":
				return 1, nil
			case "off", "no", "false", "0":
				return 0, nil
			}
			return 0, errors.New(ErrCodeParse, "expected on or off").
				WithContext("text", s)
		},
	}
)

// parseNumber parses s after removing an optional unit suffix.
func parseNumber(s, unit string) (float64, error) {
	s = strings.TrimSpace(s)
	if unit != "" && len(s) >= len(unit) && strings.EqualFold(s[len(s)-len(unit):], unit) {
		s = strings.TrimSpace(s[:len(s)-len(unit)])
	}
	return strconv.ParseFloat(s, 64)
}
