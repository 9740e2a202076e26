package tracker

import "sync/atomic"

// ChannelSink forwards results to a buffered channel. When the buffer is
// full the result is dropped and counted; the frame never blocks.
type ChannelSink struct {
	ch      chan Result
	dropped atomic.Int64
}

// NewChannelSink creates a sink with the given buffer size.
func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{ch: make(chan Result, size)}
}

// Send delivers r without blocking. Pass it to Tracker.Subscribe.
func (s *ChannelSink) Send(r Result) {
	select {
	case s.ch <- r:
	default:
		s.dropped.Add(1)
	}
}

// C returns the receive side of the channel.
func (s *ChannelSink) C() <-chan Result {
	return s.ch
}

// Dropped reports how many results were discarded.
func (s *ChannelSink) Dropped() int64 {
	return s.dropped.Load()
}
