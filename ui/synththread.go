package ui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user-none/fmvoice/fm"
)

// BlockSize is the number of samples generated per loop iteration, 1/60 s
// at 48kHz.
const BlockSize = fm.SampleRate / 60

// ADT buffer thresholds in bytes. The synth loop speeds up below the
// minimum and slows down above the maximum.
const (
	adtMinBuffer = 9600
	adtMaxBuffer = 19200
)

// BlockDuration is the playback length of one block.
var BlockDuration = time.Second * BlockSize / fm.SampleRate

// EventKind identifies a voice event.
type EventKind uint8

// Voice events.
const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventAlgorithm
	EventPatch
)

func (k EventKind) String() string {
	switch k {
	case EventNoteOn:
		return "note on"
	case EventNoteOff:
		return "note off"
	case EventAlgorithm:
		return "algorithm"
	case EventPatch:
		return "patch"
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event is one change to the voice, applied between blocks.
type Event struct {
	Kind      EventKind
	Pitch     fm.Fixed // EventNoteOn
	Algorithm int      // EventAlgorithm
	Patch     fm.Patch // EventPatch
}

// EventQueue carries events from the Ebiten thread to the synth goroutine
// in arrival order.
type EventQueue struct {
	mu      sync.Mutex
	pending []Event
	spare   []Event
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// Drain returns the queued events and empties the queue. The returned
// slice is valid until the next call to Drain.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	out := q.pending
	q.pending = q.spare[:0]
	q.spare = out
	q.mu.Unlock()
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// BlockFilter post-processes rendered blocks in place.
type BlockFilter interface {
	Process(samples []int16)
}

// Synth owns a voice and applies queued events to it between blocks. It is
// used from a single goroutine.
type Synth struct {
	voice  *fm.Voice
	events *EventQueue
	filter BlockFilter
}

// NewSynth returns a synth playing v with events taken from q.
func NewSynth(v *fm.Voice, q *EventQueue) *Synth {
	return &Synth{voice: v, events: q}
}

// SetFilter installs f to process every block after rendering. nil removes
// the filter. Call it before the synth goroutine starts.
func (s *Synth) SetFilter(f BlockFilter) { s.filter = f }

// Voice returns the synth's voice. Only the goroutine driving the synth may
// touch it.
func (s *Synth) Voice() *fm.Voice { return s.voice }

// RenderBlock applies pending events and fills dst with the next samples.
// Rejected events are reported in the returned error; the block is always
// rendered.
func (s *Synth) RenderBlock(dst []int16) error {
	var errs []error
	for _, e := range s.events.Drain() {
		if err := s.apply(e); err != nil {
			errs = append(errs, err)
		}
	}
	s.voice.GenerateSamples(dst)
	if s.filter != nil {
		s.filter.Process(dst)
	}
	return errors.Join(errs...)
}

func (s *Synth) apply(e Event) error {
	switch e.Kind {
	case EventNoteOn:
		if err := fm.ValidatePitch(e.Pitch); err != nil {
			return fmt.Errorf("%v: %w", e.Kind, err)
		}
		s.voice.NoteOn(e.Pitch)
	case EventNoteOff:
		s.voice.NoteOff()
	case EventAlgorithm:
		if err := s.voice.SetAlgorithm(e.Algorithm); err != nil {
			return fmt.Errorf("%v: %w", e.Kind, err)
		}
	case EventPatch:
		if err := s.voice.Apply(e.Patch); err != nil {
			return fmt.Errorf("%v: %w", e.Kind, err)
		}
	default:
		return fmt.Errorf("unknown event %v", e.Kind)
	}
	return nil
}

// SharedScope holds the most recent block for display. The synth goroutine
// writes it and Ebiten's Draw reads a snapshot.
type SharedScope struct {
	mu    sync.Mutex
	write []int16
	read  []int16
	n     int
}

// NewSharedScope returns a scope holding up to size samples.
func NewSharedScope(size int) *SharedScope {
	return &SharedScope{
		write: make([]int16, size),
		read:  make([]int16, size),
	}
}

// Update stores samples, truncated to the scope size.
func (sc *SharedScope) Update(samples []int16) {
	sc.mu.Lock()
	sc.n = copy(sc.write, samples)
	sc.mu.Unlock()
}

// Read returns a copy of the stored samples. The slice is reused by the
// next call to Read.
func (sc *SharedScope) Read() []int16 {
	sc.mu.Lock()
	n := copy(sc.read, sc.write[:sc.n])
	sc.mu.Unlock()
	return sc.read[:n]
}

// SynthControl coordinates pause, resume and stop between the Ebiten
// thread and the synth goroutine.
type SynthControl struct {
	mu       sync.Mutex
	pauseReq bool
	paused   bool
	stopReq  bool
	ackCh    chan struct{}
}

// NewSynthControl returns a control for a running synth.
func NewSynthControl() *SynthControl {
	return &SynthControl{ackCh: make(chan struct{}, 1)}
}

// RequestPause asks the synth goroutine to pause and waits until it has.
func (sc *SynthControl) RequestPause() {
	sc.mu.Lock()
	if sc.paused || sc.pauseReq || sc.stopReq {
		sc.mu.Unlock()
		return
	}
	sc.pauseReq = true
	sc.mu.Unlock()

	<-sc.ackCh
}

// RequestResume lets a paused synth goroutine continue.
func (sc *SynthControl) RequestResume() {
	sc.mu.Lock()
	sc.pauseReq = false
	sc.paused = false
	sc.mu.Unlock()
}

// CheckPause is called by the synth goroutine between blocks. When a pause
// is pending it acknowledges and waits until resumed or stopped. It
// returns false when the goroutine should exit.
func (sc *SynthControl) CheckPause() bool {
	sc.mu.Lock()
	if sc.stopReq {
		sc.mu.Unlock()
		return false
	}
	if !sc.pauseReq {
		sc.mu.Unlock()
		return true
	}
	sc.paused = true
	sc.mu.Unlock()

	select {
	case sc.ackCh <- struct{}{}:
	default:
	}

	for {
		sc.mu.Lock()
		if sc.stopReq {
			sc.mu.Unlock()
			return false
		}
		if !sc.pauseReq {
			sc.paused = false
			sc.mu.Unlock()
			return true
		}
		sc.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
}

// Stop tells the synth goroutine to exit. A pending pause is released.
func (sc *SynthControl) Stop() {
	sc.mu.Lock()
	sc.stopReq = true
	pending := sc.pauseReq && !sc.paused
	sc.pauseReq = false
	sc.mu.Unlock()

	// Unblock a RequestPause that the goroutine will never acknowledge.
	if pending {
		select {
		case sc.ackCh <- struct{}{}:
		default:
		}
	}
}

// ShouldRun reports whether the synth goroutine should keep running.
func (sc *SynthControl) ShouldRun() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return !sc.stopReq
}

// IsPaused reports whether the synth goroutine is parked in CheckPause.
func (sc *SynthControl) IsPaused() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.paused
}

// AdjustSleep scales the time left in a block by the audio buffer level:
// shorter when the buffer runs low, longer when it fills up.
func AdjustSleep(remaining time.Duration, bufferLevel int) time.Duration {
	switch {
	case bufferLevel < adtMinBuffer:
		return remaining * 9 / 10
	case bufferLevel > adtMaxBuffer:
		return remaining * 11 / 10
	}
	return remaining
}
