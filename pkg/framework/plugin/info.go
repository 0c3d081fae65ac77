// Package plugin holds the author-facing pieces of a plugin class: its
// identity and embeddable bases that wire parameters, ports and state into
// the capability providers the runtime looks for.
package plugin

import (
	"strings"

	"github.com/agilira/go-errors"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// Feature strings hosts use to categorise plugins.
const (
	FeatureInstrument  = "instrument"
	FeatureAudioEffect = "audio-effect"
	FeatureNoteEffect  = "note-effect"
	FeatureAnalyzer    = "analyzer"

	FeatureMono     = "mono"
	FeatureStereo   = "stereo"
	FeatureSurround = "surround"

	FeatureUtility    = "utility"
	FeatureDistortion = "distortion"
	FeatureCompressor = "compressor"
	FeatureFilter     = "filter"
	FeatureDelay      = "delay"
	FeatureReverb     = "reverb"
	FeatureMixing     = "mixing"
)

// Error codes for identity validation
const (
	ErrCodeInvalidInfo = "PLUGIN_1001"
)

// Info contains plugin metadata
type Info struct {
	ID          string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name        string // Display name
	Vendor      string // Company/developer name
	URL         string
	ManualURL   string
	SupportURL  string
	Version     string // Semantic version (e.g., "1.0.0")
	Description string
	Features    []string
}

// Validate checks the fields a host requires.
func (i Info) Validate() error {
	switch {
	case i.ID == "":
		return invalidInfo("id", "plugin id must not be empty")
	case strings.ContainsRune(i.ID, 0):
		return invalidInfo("id", "plugin id must not contain NUL")
	case i.Name == "":
		return invalidInfo("name", "plugin name must not be empty")
	}
	for _, f := range i.Features {
		if f == "" || strings.ContainsRune(f, 0) {
			return invalidInfo("features", "features must be non-empty strings")
		}
	}
	return nil
}

func invalidInfo(field, msg string) *errors.Error {
	return errors.New(ErrCodeInvalidInfo, msg).
		WithUserMessage("Plugin identity is incomplete").
		WithContext("field", field).
		WithSeverity("error")
}

// Has reports whether the feature list contains f.
func (i Info) Has(f string) bool {
	for _, x := range i.Features {
		if x == f {
			return true
		}
	}
	return false
}

// Descriptor builds the host-facing descriptor. The strings it points at
// live on the Go heap and stay valid as long as the descriptor is reachable.
func (i Info) Descriptor() *clap.PluginDescriptor {
	return &clap.PluginDescriptor{
		ClapVersion: clap.CurrentVersion,
		ID:          clap.CString(i.ID),
		Name:        clap.CString(i.Name),
		Vendor:      clap.CString(i.Vendor),
		URL:         clap.CString(i.URL),
		ManualURL:   clap.CString(i.ManualURL),
		SupportURL:  clap.CString(i.SupportURL),
		Version:     clap.CString(i.Version),
		Description: clap.CString(i.Description),
		Features:    clap.CStrings(i.Features),
	}
}
