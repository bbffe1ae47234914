// Package cli plays a voice from the computer keyboard in an Ebiten window.
// The voice runs on its own goroutine paced by the audio buffer; the Ebiten
// thread polls keys and draws the oscilloscope.
package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	scopebridge "github.com/user-none/fmvoice/bridge/ebiten"
	"github.com/user-none/fmvoice/fm"
	"github.com/user-none/fmvoice/ui"
)

// noteKeys is one octave on the bottom two letter rows, C to B.
var noteKeys = [12]ebiten.Key{
	ebiten.KeyZ, ebiten.KeyS, ebiten.KeyX, ebiten.KeyD, ebiten.KeyC,
	ebiten.KeyV, ebiten.KeyG, ebiten.KeyB, ebiten.KeyH, ebiten.KeyN,
	ebiten.KeyJ, ebiten.KeyM,
}

var algorithmKeys = [fm.NumAlgorithms]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8,
}

// Runner plays a voice from the keyboard.
type Runner struct {
	keyboard    *ui.Keyboard
	audioPlayer *ui.AudioPlayer
	scope       *scopebridge.Scope

	synth       *ui.Synth
	control     *ui.SynthControl
	events      *ui.EventQueue
	sharedScope *ui.SharedScope
	synthDone   chan struct{}

	patchName string
	algorithm int
	paused    bool
}

// Options configures a Runner.
type Options struct {
	PatchName string
	// Base is the pitch of the Z key.
	Base   fm.Fixed
	Volume float64
	// Filter, if set, processes every block before playback.
	Filter ui.BlockFilter
}

// NewRunner starts a synth goroutine playing v. Audio initialization
// failure is non-fatal; the window still runs.
func NewRunner(v *fm.Voice, opts Options) *Runner {
	player, err := ui.NewAudioPlayer(opts.Volume)
	if err != nil {
		log.Printf("Warning: audio initialization failed: %v", err)
	}

	events := &ui.EventQueue{}
	r := &Runner{
		keyboard:    ui.NewKeyboard(opts.Base),
		audioPlayer: player,
		scope:       scopebridge.NewScope(),
		synth:       ui.NewSynth(v, events),
		control:     ui.NewSynthControl(),
		events:      events,
		sharedScope: ui.NewSharedScope(ui.BlockSize),
		synthDone:   make(chan struct{}),
		patchName:   opts.PatchName,
		algorithm:   v.Algorithm(),
	}

	if opts.Filter != nil {
		r.synth.SetFilter(opts.Filter)
	}

	go r.synthLoop()

	return r
}

// Close stops the synth goroutine and the audio output.
func (r *Runner) Close() {
	if r.control != nil {
		r.control.Stop()
		<-r.synthDone
	}
	if r.audioPlayer != nil {
		r.audioPlayer.Close()
		r.audioPlayer = nil
	}
}

// synthLoop renders one block per iteration and sleeps for what is left of
// the block, adjusted by the audio buffer level (ADT).
func (r *Runner) synthLoop() {
	defer close(r.synthDone)

	block := make([]int16, ui.BlockSize)
	last := time.Now()

	for {
		if !r.control.CheckPause() {
			return
		}

		if err := r.synth.RenderBlock(block); err != nil {
			log.Printf("event rejected: %v", err)
		}
		if r.audioPlayer != nil {
			r.audioPlayer.QueueSamples(block)
		}
		r.sharedScope.Update(block)

		sleep := ui.BlockDuration - time.Since(last)
		if r.audioPlayer != nil {
			sleep = ui.AdjustSleep(sleep, r.audioPlayer.BufferLevel())
		}
		if sleep > time.Millisecond {
			time.Sleep(sleep)
		}
		last = time.Now()
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if !ebiten.IsFocused() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		r.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		r.keyboard.Shift(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		r.keyboard.Shift(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		r.nextPatch()
	}
	for i, k := range algorithmKeys {
		if inpututil.IsKeyJustPressed(k) {
			r.algorithm = i
			r.events.Push(ui.Event{Kind: ui.EventAlgorithm, Algorithm: i})
		}
	}
	for i, k := range noteKeys {
		if inpututil.IsKeyJustPressed(k) {
			r.events.Push(r.keyboard.Press(i))
		}
		if inpututil.IsKeyJustReleased(k) {
			if e, ok := r.keyboard.Release(i); ok {
				r.events.Push(e)
			}
		}
	}
	return nil
}

// nextPatch switches to the built-in patch after the current one.
func (r *Runner) nextPatch() {
	names := fm.Presets()
	next := names[0]
	for i, n := range names {
		if n == r.patchName && i+1 < len(names) {
			next = names[i+1]
		}
	}
	p, err := fm.Preset(next)
	if err != nil {
		log.Printf("patch %s: %v", next, err)
		return
	}
	r.patchName = next
	r.algorithm = p.Algorithm
	r.events.Push(ui.Event{Kind: ui.EventPatch, Patch: p})
}

func (r *Runner) togglePause() {
	if r.paused {
		r.control.RequestResume()
	} else {
		r.control.RequestPause()
		if r.audioPlayer != nil {
			r.audioPlayer.Flush()
		}
	}
	r.paused = !r.paused
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.scope.Draw(screen, r.sharedScope.Read())

	status := fmt.Sprintf("patch %s  algorithm %d  octave %+d",
		r.patchName, r.algorithm, r.keyboard.Octave())
	if r.paused {
		status += "  [paused]"
	}
	ebitenutil.DebugPrint(screen, status+"\nZ-M play  1-8 algorithm 0-7  tab patch  up/down octave  space pause")
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.scope.Layout(outsideWidth, outsideHeight)
}
