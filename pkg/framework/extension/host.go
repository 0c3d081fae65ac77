package extension

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

var (
	hostLogID        = clap.CString(clap.ExtLog)
	hostLatencyID    = clap.CString(clap.ExtLatency)
	hostAudioPortsID = clap.CString(clap.ExtAudioPorts)
	hostParamsID     = clap.CString(clap.ExtParams)
)

func queryHost(h *clap.Host, id *byte) unsafe.Pointer {
	if h == nil || h.GetExtension == nil {
		return nil
	}
	return h.GetExtension(h, id)
}

// HostLog forwards messages to the host's log. A nil *HostLog discards them.
type HostLog struct {
	host  *clap.Host
	table *clap.HostLog
}

// QueryHostLog returns nil when the host does not offer clap.log.
func QueryHostLog(h *clap.Host) *HostLog {
	t := (*clap.HostLog)(queryHost(h, hostLogID))
	if t == nil || t.Log == nil {
		return nil
	}
	return &HostLog{host: h, table: t}
}

// Log sends msg with the given severity. Thread safe.
func (l *HostLog) Log(severity clap.LogSeverity, msg string) {
	if l == nil {
		return
	}
	l.table.Log(l.host, severity, clap.CString(msg))
}

// HostLatency lets the plugin announce a latency change.
type HostLatency struct {
	host  *clap.Host
	table *clap.HostLatency
}

// QueryHostLatency returns nil when the host does not offer clap.latency.
func QueryHostLatency(h *clap.Host) *HostLatency {
	t := (*clap.HostLatency)(queryHost(h, hostLatencyID))
	if t == nil || t.Changed == nil {
		return nil
	}
	return &HostLatency{host: h, table: t}
}

// Changed tells the host the plugin latency changed. Main thread.
func (l *HostLatency) Changed() {
	if l == nil {
		return
	}
	l.table.Changed(l.host)
}

// HostAudioPorts lets the plugin ask the host to rescan its ports.
type HostAudioPorts struct {
	host  *clap.Host
	table *clap.HostAudioPorts
}

// QueryHostAudioPorts returns nil when the host does not offer
// clap.audio-ports.
func QueryHostAudioPorts(h *clap.Host) *HostAudioPorts {
	t := (*clap.HostAudioPorts)(queryHost(h, hostAudioPortsID))
	if t == nil || t.Rescan == nil || t.IsRescanFlagSupported == nil {
		return nil
	}
	return &HostAudioPorts{host: h, table: t}
}

// IsRescanFlagSupported asks whether the host honours flag.
func (p *HostAudioPorts) IsRescanFlagSupported(flag uint32) bool {
	if p == nil {
		return false
	}
	return p.table.IsRescanFlagSupported(p.host, flag)
}

// Rescan asks the host to reread the port list. Main thread.
func (p *HostAudioPorts) Rescan(flags uint32) {
	if p == nil {
		return
	}
	p.table.Rescan(p.host, flags)
}

// HostParams lets the plugin signal parameter changes.
type HostParams struct {
	host  *clap.Host
	table *clap.HostParams
}

// QueryHostParams returns nil when the host does not offer clap.params.
func QueryHostParams(h *clap.Host) *HostParams {
	t := (*clap.HostParams)(queryHost(h, hostParamsID))
	if t == nil || t.Rescan == nil || t.Clear == nil || t.RequestFlush == nil {
		return nil
	}
	return &HostParams{host: h, table: t}
}

// Rescan asks the host to reread parameter info or values.
func (p *HostParams) Rescan(flags uint32) {
	if p == nil {
		return
	}
	p.table.Rescan(p.host, flags)
}

// Clear drops host references to a parameter.
func (p *HostParams) Clear(id, flags uint32) {
	if p == nil {
		return
	}
	p.table.Clear(p.host, id, flags)
}

// RequestFlush asks the host to call flush soon. Any thread.
func (p *HostParams) RequestFlush() {
	if p == nil {
		return
	}
	p.table.RequestFlush(p.host)
}
