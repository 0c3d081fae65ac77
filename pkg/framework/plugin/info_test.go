package plugin

import (
	"testing"

	"github.com/justyntemme/clapgo/pkg/clap"
)

func TestInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    Info
		wantErr bool
	}{
		{
			name:    "Valid plugin",
			info:    Info{ID: "com.example.plugin", Name: "Plugin"},
			wantErr: false,
		},
		{
			name:    "Empty plugin ID",
			info:    Info{Name: "Plugin"},
			wantErr: true,
		},
		{
			name:    "Embedded NUL",
			info:    Info{ID: "com.example\x00plugin", Name: "Plugin"},
			wantErr: true,
		},
		{
			name:    "Empty name",
			info:    Info{ID: "com.example.plugin"},
			wantErr: true,
		},
		{
			name:    "Empty feature",
			info:    Info{ID: "com.example.plugin", Name: "Plugin", Features: []string{FeatureAudioEffect, ""}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDescriptor(t *testing.T) {
	info := Info{
		ID:       "com.example.gain",
		Name:     "Gain",
		Vendor:   "Example",
		Version:  "1.2.3",
		Features: []string{FeatureAudioEffect, FeatureStereo},
	}
	d := info.Descriptor()

	if got := clap.GoString(d.ID); got != info.ID {
		t.Errorf("ID = %q, want %q", got, info.ID)
	}
	if got := clap.GoString(d.Name); got != info.Name {
		t.Errorf("Name = %q, want %q", got, info.Name)
	}
	if got := clap.GoString(d.URL); got != "" {
		t.Errorf("URL = %q, want empty", got)
	}
	if d.ClapVersion != clap.CurrentVersion {
		t.Errorf("ClapVersion = %v", d.ClapVersion)
	}
	features := clap.GoStrings(d.Features)
	if len(features) != 2 || features[0] != FeatureAudioEffect || features[1] != FeatureStereo {
		t.Errorf("Features = %v", features)
	}
	if !info.Has(FeatureStereo) || info.Has(FeatureMono) {
		t.Errorf("Has gave wrong answers for %v", info.Features)
	}
}
