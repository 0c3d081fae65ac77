// Package clap is the Go rendition of the CLAP C ABI consumed by this module.
//
// Structs mirror the C layout field for field. Function pointer tables are
// modelled as structs of func fields whose first argument is the table owner,
// strings are NUL-terminated *byte, and arrays are a base pointer plus a count.
// The package carries no behaviour beyond small conversion helpers.
package clap

import "unsafe"

// Version is the protocol version triple.
type Version struct {
	Major    uint32
	Minor    uint32
	Revision uint32
}

// CurrentVersion is the protocol version this module implements.
var CurrentVersion = Version{Major: 1, Minor: 2, Revision: 2}

// Compatible reports whether a host speaking v can load plugins built against
// CurrentVersion.
func (v Version) Compatible() bool {
	return v.Major >= 1
}

// PluginDescriptor identifies a plugin class.
type PluginDescriptor struct {
	ClapVersion Version
	ID          *byte
	Name        *byte
	Vendor      *byte
	URL         *byte
	ManualURL   *byte
	SupportURL  *byte
	Version     *byte
	Description *byte
	Features    **byte // NULL-terminated array
}

// Plugin is the dispatch table the host calls into. PluginData is opaque to
// the host and round-trips the runtime handle.
type Plugin struct {
	Desc       *PluginDescriptor
	PluginData uintptr

	Init            func(p *Plugin) bool
	Destroy         func(p *Plugin)
	Activate        func(p *Plugin, sampleRate float64, minFrames, maxFrames uint32) bool
	Deactivate      func(p *Plugin)
	StartProcessing func(p *Plugin) bool
	StopProcessing  func(p *Plugin)
	Reset           func(p *Plugin)
	Process         func(p *Plugin, process *Process) ProcessStatus
	GetExtension    func(p *Plugin, id *byte) unsafe.Pointer
	OnMainThread    func(p *Plugin)
}

// Host is the host-provided identity and callback table.
type Host struct {
	ClapVersion Version
	HostData    unsafe.Pointer
	Name        *byte
	Vendor      *byte
	URL         *byte
	Version     *byte

	GetExtension    func(h *Host, id *byte) unsafe.Pointer
	RequestRestart  func(h *Host)
	RequestProcess  func(h *Host)
	RequestCallback func(h *Host)
}

// PluginFactory enumerates and instantiates plugin classes.
type PluginFactory struct {
	GetPluginCount      func(f *PluginFactory) uint32
	GetPluginDescriptor func(f *PluginFactory, index uint32) *PluginDescriptor
	CreatePlugin        func(f *PluginFactory, host *Host, pluginID *byte) *Plugin
}

// PluginEntry is the symbol a host resolves when it loads the library.
type PluginEntry struct {
	ClapVersion Version
	Init        func(path *byte) bool
	Deinit      func()
	GetFactory  func(factoryID *byte) unsafe.Pointer
}

// PluginFactoryID is the factory identifier passed to PluginEntry.GetFactory.
const PluginFactoryID = "clap.plugin-factory"
