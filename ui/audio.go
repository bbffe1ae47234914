package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/user-none/fmvoice/fm"
)

// The device runs in stereo; the mono voice is written to both channels.
const (
	audioChannels = 2
	bytesPerFrame = audioChannels * 2
)

// ringBufferCapacity holds about 170ms of 48kHz stereo 16-bit audio.
const ringBufferCapacity = 32768

// AudioPlayer plays voice output through oto. Mono samples are expanded to
// interleaved stereo bytes and written to a ring buffer that oto's player
// pulls from.
type AudioPlayer struct {
	player     *oto.Player
	ringBuffer *AudioRingBuffer
	frameBytes []byte
}

var (
	otoCtx      *oto.Context
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureOtoContext creates the process-wide oto context on first use. oto
// allows one context per process.
func ensureOtoContext() (*oto.Context, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   fm.SampleRate,
			ChannelCount: audioChannels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-ready
	})
	return otoCtx, otoInitErr
}

// NewAudioPlayer opens the audio device and starts playback at volume
// (0.0 to 1.0). Playback outputs silence until samples are queued.
func NewAudioPlayer(volume float64) (*AudioPlayer, error) {
	ctx, err := ensureOtoContext()
	if err != nil {
		return nil, fmt.Errorf("audio device unavailable: %w", err)
	}

	rb := NewAudioRingBuffer(ringBufferCapacity)
	player := ctx.NewPlayer(rb)
	player.SetBufferSize(adtMaxBuffer)
	player.SetVolume(volume)
	player.Play()

	return &AudioPlayer{
		player:     player,
		ringBuffer: rb,
		frameBytes: make([]byte, 0, BlockSize*bytesPerFrame),
	}, nil
}

// QueueSamples writes mono PCM samples to the playback buffer.
func (a *AudioPlayer) QueueSamples(mono []int16) {
	if len(mono) == 0 {
		return
	}
	a.frameBytes = appendStereo(a.frameBytes[:0], mono)
	a.ringBuffer.Write(a.frameBytes)
}

// appendStereo appends each sample twice, little-endian, to dst.
func appendStereo(dst []byte, mono []int16) []byte {
	for _, s := range mono {
		lo, hi := byte(s), byte(s>>8)
		dst = append(dst, lo, hi, lo, hi)
	}
	return dst
}

// BufferLevel returns the bytes queued in the ring buffer and in oto's own
// buffer. The synth loop paces itself on this value.
func (a *AudioPlayer) BufferLevel() int {
	return a.ringBuffer.Buffered() + a.player.BufferedSize()
}

// SetVolume sets the playback volume, 0.0 to 1.0.
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(vol)
}

// Flush discards queued audio so the next block plays immediately.
func (a *AudioPlayer) Flush() {
	a.ringBuffer.Clear()
}

// Close stops playback and releases the player.
func (a *AudioPlayer) Close() {
	if a.ringBuffer != nil {
		a.ringBuffer.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
