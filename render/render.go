// Package render plays scores on a voice offline and writes the result as
// 16-bit mono WAV.
package render

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/arl/blip/wave"
	"github.com/user-none/fmvoice/fm"
)

// wavChunk bounds the slices handed to wave.Writer.Write, which encodes
// through a fixed 4KiB scratch buffer.
const wavChunk = 1024

// Render errors.
var (
	ErrNoteTiming = errors.New("note timing out of range")
	ErrLength     = errors.New("render length must be positive")
)

// Note is one note of a score, with times in samples.
type Note struct {
	Pitch fm.Fixed
	On    int
	Off   int
}

// Score is a monophonic note list rendered for Length samples. Notes are
// played in order of their On time. A note starting while another sounds
// retriggers the voice.
type Score struct {
	Notes  []Note
	Length int
}

// Seconds converts a duration in seconds to a sample count.
func Seconds(s float64) int {
	return int(s * fm.SampleRate)
}

// Validate checks the score timing and every pitch.
func (s Score) Validate() error {
	if s.Length <= 0 {
		return fmt.Errorf("%w: %d", ErrLength, s.Length)
	}
	for i, n := range s.Notes {
		if n.On < 0 || n.Off <= n.On {
			return fmt.Errorf("note %d: %w: on %d off %d", i, ErrNoteTiming, n.On, n.Off)
		}
		if err := fm.ValidatePitch(n.Pitch); err != nil {
			return fmt.Errorf("note %d: %w", i, err)
		}
	}
	return nil
}

type event struct {
	at    int
	on    bool
	pitch fm.Fixed
}

func (s Score) events() []event {
	evs := make([]event, 0, 2*len(s.Notes))
	for _, n := range s.Notes {
		evs = append(evs, event{at: n.On, on: true, pitch: n.Pitch})
		evs = append(evs, event{at: n.Off})
	}
	// Offs sort before ons at the same time so a legato note is not cut
	// by the previous note's end.
	sort.SliceStable(evs, func(i, j int) bool {
		if evs[i].at != evs[j].at {
			return evs[i].at < evs[j].at
		}
		return !evs[i].on && evs[j].on
	})
	return dropStaleOffs(evs)
}

// dropStaleOffs removes note-offs that belong to a note already replaced
// by a later note-on.
func dropStaleOffs(evs []event) []event {
	out := evs[:0]
	open := 0
	for _, e := range evs {
		if e.on {
			open++
			out = append(out, e)
			continue
		}
		open--
		if open == 0 {
			out = append(out, e)
		}
	}
	return out
}

// Render plays s on v and returns Length samples of PCM. The voice is
// reset first, so its configuration alone determines the output.
func Render(v *fm.Voice, s Score) ([]int16, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	v.Reset()

	out := make([]int16, s.Length)
	pos := 0
	for _, e := range s.events() {
		if e.at >= s.Length {
			break
		}
		v.GenerateSamples(out[pos:e.at])
		pos = e.at
		if e.on {
			v.NoteOn(e.pitch)
		} else {
			v.NoteOff()
		}
	}
	v.GenerateSamples(out[pos:])
	return out, nil
}

// RenderNote plays one note held for gate samples, then keeps rendering
// until the release has finished or limit samples have been produced.
func RenderNote(v *fm.Voice, pitch fm.Fixed, gate, limit int) ([]int16, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrLength, limit)
	}
	if gate < 0 || gate > limit {
		return nil, fmt.Errorf("%w: gate %d of %d", ErrNoteTiming, gate, limit)
	}
	if err := fm.ValidatePitch(pitch); err != nil {
		return nil, err
	}

	v.Reset()
	out := make([]int16, limit)
	v.NoteOn(pitch)
	v.GenerateSamples(out[:gate])
	v.NoteOff()

	n := gate
	for n < limit && v.Active() {
		end := min(n+wavChunk, limit)
		v.GenerateSamples(out[n:end])
		n = end
	}
	return out[:n], nil
}

// WriteWAV writes samples to w as a 16-bit mono WAV stream at
// fm.SampleRate.
func WriteWAV(w io.Writer, samples []int16) error {
	return encode(wave.NewWriter(w, fm.SampleRate), samples)
}

// WriteFile writes samples to a new WAV file at path.
func WriteFile(path string, samples []int16) error {
	ww, err := wave.NewFile(path, fm.SampleRate)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return encode(ww, samples)
}

func encode(ww *wave.Writer, samples []int16) error {
	for len(samples) > 0 {
		n := min(len(samples), wavChunk)
		if _, err := ww.Write(samples[:n]); err != nil {
			ww.Close()
			return fmt.Errorf("write samples: %w", err)
		}
		samples = samples[n:]
	}
	if err := ww.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}
