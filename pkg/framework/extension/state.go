package extension

import (
	"io"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/stream"
)

// StateProvider is implemented by plugin instances with persistent state.
// The writer and reader are host streams; short transfers are already
// handled underneath.
type StateProvider interface {
	SaveState(w io.Writer) error
	LoadState(r io.Reader) error
}

// State is the clap.state capability.
type State struct{}

func (State) ID() string { return clap.ExtState }

func (State) Bind(b Binder) unsafe.Pointer {
	return unsafe.Pointer(&clap.PluginState{
		Save: func(_ *clap.Plugin, s *clap.OStream) bool {
			defer b.Recover("state.save")
			w := stream.NewWriter(s)
			if w == nil {
				b.Report("state.save", NewNilArgumentError("state.save", "stream"))
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			p, ok := inst.(StateProvider)
			if !ok {
				b.Report("state.save", NewNoProviderError("state.save"))
				return false
			}
			if err := p.SaveState(w); err != nil {
				b.Report("state.save", NewProviderFailureError("state.save", err))
				return false
			}
			return true
		},
		Load: func(_ *clap.Plugin, s *clap.IStream) bool {
			defer b.Recover("state.load")
			r := stream.NewReader(s)
			if r == nil {
				b.Report("state.load", NewNilArgumentError("state.load", "stream"))
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			p, ok := inst.(StateProvider)
			if !ok {
				b.Report("state.load", NewNoProviderError("state.load"))
				return false
			}
			if err := p.LoadState(r); err != nil {
				b.Report("state.load", NewProviderFailureError("state.load", err))
				return false
			}
			return true
		},
	})
}
