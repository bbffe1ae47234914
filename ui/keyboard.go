package ui

import "github.com/user-none/fmvoice/fm"

// Octave shift limits of a Keyboard.
const (
	MinOctave = -3
	MaxOctave = 3
)

// Keyboard turns key presses into voice events for a monophonic voice.
// The most recent key held sounds; releasing it falls back to the previous
// held key, and the note ends when no key is held.
type Keyboard struct {
	base   fm.Fixed
	octave int
	held   []int // key indices, oldest first
}

// NewKeyboard returns a keyboard whose key 0 plays base.
func NewKeyboard(base fm.Fixed) *Keyboard {
	return &Keyboard{base: base}
}

// Octave returns the current octave shift.
func (k *Keyboard) Octave() int { return k.octave }

// Shift moves the keyboard by delta octaves, within [MinOctave, MaxOctave].
// Held notes keep their pitch until retriggered.
func (k *Keyboard) Shift(delta int) {
	k.octave = min(max(k.octave+delta, MinOctave), MaxOctave)
}

// Pitch returns the pitch of key i at the current octave.
func (k *Keyboard) Pitch(i int) fm.Fixed {
	return k.base + fm.Fixed(k.octave)*fm.One + fm.Fixed(i)*fm.Semitone
}

// Press records key i as held and returns the note-on event for it.
func (k *Keyboard) Press(i int) Event {
	k.remove(i)
	k.held = append(k.held, i)
	return Event{Kind: EventNoteOn, Pitch: k.Pitch(i)}
}

// Release records key i as released. It returns the event to send, if any:
// a note-on for the previous held key when i was sounding, or a note-off
// when nothing is held any more.
func (k *Keyboard) Release(i int) (Event, bool) {
	sounding := len(k.held) > 0 && k.held[len(k.held)-1] == i
	if !k.remove(i) {
		return Event{}, false
	}
	if len(k.held) == 0 {
		return Event{Kind: EventNoteOff}, true
	}
	if !sounding {
		return Event{}, false
	}
	prev := k.held[len(k.held)-1]
	return Event{Kind: EventNoteOn, Pitch: k.Pitch(prev)}, true
}

func (k *Keyboard) remove(i int) bool {
	for j, h := range k.held {
		if h == i {
			k.held = append(k.held[:j], k.held[j+1:]...)
			return true
		}
	}
	return false
}
