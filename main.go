package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	scopebridge "github.com/user-none/fmvoice/bridge/ebiten"
	"github.com/user-none/fmvoice/cli"
	"github.com/user-none/fmvoice/fm"
	"github.com/user-none/fmvoice/render"
)

const appName = "fmvoice"

func main() {
	patchName := flag.String("patch", "drone", "built-in patch name (see -list)")
	algo := flag.Int("algo", -1, "override the patch algorithm, 0-7")
	noteName := flag.String("note", "C4", "note to render, or the lowest key when playing")
	renderPath := flag.String("render", "", "render one note to this WAV file instead of playing")
	seconds := flag.Float64("seconds", 4, "maximum render length in seconds")
	gate := flag.Float64("gate", 1, "seconds the rendered note is held")
	volume := flag.Float64("volume", 0.8, "playback volume, 0.0-1.0")
	lowpass := flag.Float64("lowpass", 0, "output low-pass cutoff in Hz, 0 to disable")
	list := flag.Bool("list", false, "list built-in patches and exit")
	flag.Parse()

	if *list {
		for _, name := range fm.Presets() {
			p, _ := fm.Preset(name)
			fmt.Printf("%-8s algorithm %d\n", name, p.Algorithm)
		}
		return
	}

	patch, err := fm.Preset(*patchName)
	if err != nil {
		log.Fatalf("Failed to load patch: %v", err)
	}
	if *algo >= 0 {
		patch.Algorithm = *algo
	}

	voice := fm.NewVoice()
	if err := voice.Apply(patch); err != nil {
		log.Fatalf("Invalid patch: %v", err)
	}

	pitch, err := fm.PitchFromNote(*noteName)
	if err != nil {
		log.Fatalf("Invalid note: %v", err)
	}

	var filter *render.LowPass
	if *lowpass != 0 {
		if filter, err = render.NewLowPass(*lowpass); err != nil {
			log.Fatalf("Invalid low-pass: %v", err)
		}
	}

	if *renderPath != "" {
		if err := renderNote(voice, pitch, filter, *renderPath, *gate, *seconds); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *volume < 0 || *volume > 1 {
		log.Fatalf("Invalid volume: %g (use 0.0-1.0)", *volume)
	}

	ebiten.SetWindowSize(scopebridge.ScopeWidth*2, scopebridge.ScopeHeight*2)
	ebiten.SetWindowTitle(appName + " - " + patch.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	opts := cli.Options{PatchName: patch.Name, Base: pitch, Volume: *volume}
	if filter != nil {
		opts.Filter = filter
	}
	runner := cli.NewRunner(voice, opts)
	defer runner.Close()

	if err := ebiten.RunGame(runner); err != nil {
		log.Fatal(err)
	}
}

func renderNote(v *fm.Voice, pitch fm.Fixed, filter *render.LowPass, path string, gate, seconds float64) error {
	samples, err := render.RenderNote(v, pitch, render.Seconds(gate), render.Seconds(seconds))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if filter != nil {
		filter.Process(samples)
	}
	if err := render.WriteFile(path, samples); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s: %d samples (%.2fs)\n", path, len(samples), float64(len(samples))/fm.SampleRate)
	return nil
}
