// Package claptest provides a host-side harness for driving plugins in tests.
package claptest

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// LogRecord is one message received through the host log extension.
type LogRecord struct {
	Severity clap.LogSeverity
	Message  string
}

// Host is a fake host. Raw is what plugins receive; callers may clear fields
// on it to simulate a broken host.
type Host struct {
	Raw clap.Host

	Restarts  atomic.Int32
	Processes atomic.Int32
	Callbacks atomic.Int32

	LatencyChanges atomic.Int32
	FlushRequests  atomic.Int32

	mu      sync.Mutex
	logs    []LogRecord
	rescans []uint32
	offered map[string]bool

	log     clap.HostLog
	latency clap.HostLatency
	ports   clap.HostAudioPorts
	params  clap.HostParams
}

// NewHost returns a fully populated host offering the named extensions.
func NewHost(extensions ...string) *Host {
	h := &Host{offered: make(map[string]bool)}
	for _, id := range extensions {
		h.offered[id] = true
	}

	h.Raw = clap.Host{
		ClapVersion: clap.CurrentVersion,
		Name:        clap.CString("claptest"),
		Vendor:      clap.CString("clapgo"),
		URL:         clap.CString("https://example.invalid/claptest"),
		Version:     clap.CString("1.0.0"),
		GetExtension: func(_ *clap.Host, id *byte) unsafe.Pointer {
			return h.extension(clap.GoString(id))
		},
		RequestRestart:  func(*clap.Host) { h.Restarts.Add(1) },
		RequestProcess:  func(*clap.Host) { h.Processes.Add(1) },
		RequestCallback: func(*clap.Host) { h.Callbacks.Add(1) },
	}

	h.log = clap.HostLog{
		Log: func(_ *clap.Host, severity clap.LogSeverity, msg *byte) {
			h.mu.Lock()
			h.logs = append(h.logs, LogRecord{Severity: severity, Message: clap.GoString(msg)})
			h.mu.Unlock()
		},
	}
	h.latency = clap.HostLatency{
		Changed: func(*clap.Host) { h.LatencyChanges.Add(1) },
	}
	h.ports = clap.HostAudioPorts{
		IsRescanFlagSupported: func(_ *clap.Host, flag uint32) bool { return flag != 0 },
		Rescan: func(_ *clap.Host, flags uint32) {
			h.mu.Lock()
			h.rescans = append(h.rescans, flags)
			h.mu.Unlock()
		},
	}
	h.params = clap.HostParams{
		Rescan:       func(*clap.Host, uint32) {},
		Clear:        func(*clap.Host, uint32, uint32) {},
		RequestFlush: func(*clap.Host) { h.FlushRequests.Add(1) },
	}
	return h
}

func (h *Host) extension(id string) unsafe.Pointer {
	if !h.offered[id] {
		return nil
	}
	switch id {
	case clap.ExtLog:
		return unsafe.Pointer(&h.log)
	case clap.ExtLatency:
		return unsafe.Pointer(&h.latency)
	case clap.ExtAudioPorts:
		return unsafe.Pointer(&h.ports)
	case clap.ExtParams:
		return unsafe.Pointer(&h.params)
	}
	return nil
}

// Logs returns a copy of the received log records.
func (h *Host) Logs() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LogRecord(nil), h.logs...)
}

// Rescans returns the flags of every audio ports rescan request.
func (h *Host) Rescans() []uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]uint32(nil), h.rescans...)
}
