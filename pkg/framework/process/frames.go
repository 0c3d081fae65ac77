package process

import (
	"fmt"
	"iter"
)

// FrameWalker visits the frames of a block in order together with the input
// events stamped on each frame. It is lazy and forward only.
//
// Events must arrive sorted by time. An event whose time is behind the
// current frame is skipped, never attributed to a later frame. Events at or
// past FrameCount are never visited. Both cases are counted by Dropped.
type FrameWalker struct {
	view    *View
	gen     uint64
	events  InputEvents
	nev     uint32
	frames  uint32
	next    uint32
	cursor  uint32
	skipped uint32
}

func (w *FrameWalker) reset(v *View) {
	*w = FrameWalker{
		view:   v,
		gen:    v.gen,
		events: InputEvents{raw: v.raw.InEvents},
		frames: v.raw.FramesCount,
	}
	w.nev = w.events.Len()
}

// Next returns the next frame, or false once every frame was visited.
func (w *FrameWalker) Next() (Frame, bool) {
	if debugChecks {
		w.view.checkGen(w.gen)
	}
	if w.next >= w.frames {
		return Frame{}, false
	}
	i := w.next
	w.next++

	for w.cursor < w.nev {
		h := w.events.header(w.cursor)
		if h != nil && h.Time >= i {
			break
		}
		w.cursor++
		w.skipped++
	}
	start := w.cursor
	for w.cursor < w.nev {
		h := w.events.header(w.cursor)
		if h == nil || h.Time != i {
			break
		}
		w.cursor++
	}

	return Frame{
		index: i,
		run:   EventRun{events: w.events, start: start, end: w.cursor},
		view:  w.view,
	}, true
}

// All yields the remaining frames.
func (w *FrameWalker) All() iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for {
			f, ok := w.Next()
			if !ok || !yield(f) {
				return
			}
		}
	}
}

// Remaining returns the number of frames not yet visited.
func (w *FrameWalker) Remaining() uint32 { return w.frames - w.next }

// Dropped returns the number of events that were skipped because they were
// out of order, plus, once the walk is exhausted, those left unvisited.
func (w *FrameWalker) Dropped() uint32 {
	d := w.skipped
	if w.next >= w.frames {
		d += w.nev - w.cursor
	}
	return d
}

// Frame is one sample position of the block.
type Frame struct {
	index uint32
	run   EventRun
	view  *View
}

// Index is the frame offset within the block.
func (f Frame) Index() uint32 { return f.index }

// Events returns the input events stamped on this frame.
func (f Frame) Events() EventRun { return f.run }

// AudioInput returns input port k at this frame.
func (f Frame) AudioInput(k uint32) FramePort {
	return FramePort{port: f.view.AudioInput(k), frame: f.index}
}

// AudioOutput returns output port k at this frame.
func (f Frame) AudioOutput(k uint32) FramePort {
	return FramePort{port: f.view.AudioOutput(k), frame: f.index}
}

// EventRun is a contiguous slice of the input list.
type EventRun struct {
	events     InputEvents
	start, end uint32
}

// Len returns the number of events in the run.
func (r EventRun) Len() uint32 { return r.end - r.start }

// At returns the i-th event of the run.
func (r EventRun) At(i uint32) Event {
	if i >= r.Len() {
		panic(fmt.Sprintf("process: frame event %d out of range (%d events)", i, r.Len()))
	}
	return Event{h: r.events.header(r.start + i)}
}

// Each calls fn for every event in the run.
func (r EventRun) Each(fn func(Event)) {
	for i := r.start; i < r.end; i++ {
		fn(Event{h: r.events.header(i)})
	}
}

// FramePort addresses the samples of one port at one frame.
type FramePort struct {
	port  Port
	frame uint32
}

// ChannelCount returns the number of channels of the port.
func (p FramePort) ChannelCount() uint32 { return p.port.ChannelCount() }

// Sample32 reads channel ch.
func (p FramePort) Sample32(ch uint32) float32 { return p.port.Channel32(ch)[p.frame] }

// SetSample32 writes channel ch.
func (p FramePort) SetSample32(ch uint32, v float32) { p.port.Channel32(ch)[p.frame] = v }

// Sample64 reads channel ch.
func (p FramePort) Sample64(ch uint32) float64 { return p.port.Channel64(ch)[p.frame] }

// SetSample64 writes channel ch.
func (p FramePort) SetSample64(ch uint32, v float64) { p.port.Channel64(ch)[p.frame] = v }
