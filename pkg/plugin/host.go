package plugin

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
)

// Host is the validated host handle. It is immutable after init and may be
// read from any thread.
type Host struct {
	raw     *clap.Host
	name    string
	vendor  string
	url     string
	version string

	log        *extension.HostLog
	latency    *extension.HostLatency
	audioPorts *extension.HostAudioPorts
	params     *extension.HostParams
}

// NewHost validates raw. Name, vendor, version and every callback are
// required; the URL may be null.
func NewHost(raw *clap.Host) (*Host, error) {
	if raw == nil {
		return nil, NewHostContractError("host", "null host pointer")
	}
	if !raw.ClapVersion.Compatible() {
		return nil, NewHostContractError("clap_version", "incompatible protocol version")
	}
	required := []struct {
		field string
		ok    bool
	}{
		{"name", raw.Name != nil},
		{"vendor", raw.Vendor != nil},
		{"version", raw.Version != nil},
		{"get_extension", raw.GetExtension != nil},
		{"request_restart", raw.RequestRestart != nil},
		{"request_process", raw.RequestProcess != nil},
		{"request_callback", raw.RequestCallback != nil},
	}
	for _, r := range required {
		if !r.ok {
			return nil, NewHostContractError(r.field, "required field is null")
		}
	}

	h := &Host{
		raw:     raw,
		name:    clap.GoString(raw.Name),
		vendor:  clap.GoString(raw.Vendor),
		url:     clap.GoString(raw.URL),
		version: clap.GoString(raw.Version),
	}
	h.log = extension.QueryHostLog(raw)
	h.latency = extension.QueryHostLatency(raw)
	h.audioPorts = extension.QueryHostAudioPorts(raw)
	h.params = extension.QueryHostParams(raw)
	return h, nil
}

func (h *Host) Raw() *clap.Host { return h.raw }
func (h *Host) Name() string    { return h.name }
func (h *Host) Vendor() string  { return h.vendor }
func (h *Host) URL() string     { return h.url }
func (h *Host) Version() string { return h.version }

// Extension queries a host capability by id. Nil means absent.
func (h *Host) Extension(id string) unsafe.Pointer {
	return h.raw.GetExtension(h.raw, clap.CString(id))
}

// Log is the host's clap.log, or nil. HostLog methods are nil safe.
func (h *Host) Log() *extension.HostLog { return h.log }

// Latency is the host's clap.latency, or nil.
func (h *Host) Latency() *extension.HostLatency { return h.latency }

// AudioPorts is the host's clap.audio-ports, or nil.
func (h *Host) AudioPorts() *extension.HostAudioPorts { return h.audioPorts }

// Params is the host's clap.params, or nil.
func (h *Host) Params() *extension.HostParams { return h.params }

// RequestRestart asks the host to deactivate and reactivate the plugin.
func (h *Host) RequestRestart() { h.raw.RequestRestart(h.raw) }

// RequestProcess asks the host to start processing.
func (h *Host) RequestProcess() { h.raw.RequestProcess(h.raw) }

// RequestCallback asks the host to call on_main_thread. Any thread.
func (h *Host) RequestCallback() { h.raw.RequestCallback(h.raw) }
