package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer is a byte FIFO shared by the synth goroutine (writer) and
// oto's player (reader). Reads block while the buffer is empty. Writes never
// block: when full, the oldest bytes are overwritten.
type AudioRingBuffer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	data   []byte
	head   int // next byte to read
	size   int // bytes queued
	closed bool
}

// NewAudioRingBuffer returns an empty buffer holding up to capacity bytes.
// capacity should be a multiple of the stereo frame size so that dropping
// old data never splits a frame.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{data: make([]byte, capacity)}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Cap returns the buffer capacity in bytes.
func (rb *AudioRingBuffer) Cap() int { return len(rb.data) }

// Write queues p, dropping the oldest queued bytes if p does not fit. It
// returns the number of bytes dropped, counting any prefix of p itself that
// was too large to ever fit.
func (rb *AudioRingBuffer) Write(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(p) == 0 {
		return 0
	}

	c := len(rb.data)
	dropped := 0
	if len(p) > c {
		dropped = len(p) - c
		p = p[dropped:]
	}
	if over := rb.size + len(p) - c; over > 0 {
		rb.head = (rb.head + over) % c
		rb.size -= over
		dropped += over
	}

	tail := (rb.head + rb.size) % c
	n := copy(rb.data[tail:], p)
	copy(rb.data, p[n:])
	rb.size += len(p)

	rb.cond.Signal()
	return dropped
}

// Read implements io.Reader. It blocks until data is queued and returns
// io.EOF once the buffer is closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.size == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	want := len(p)
	if want > rb.size {
		want = rb.size
	}
	c := len(rb.data)
	end := rb.head + want
	if end <= c {
		copy(p, rb.data[rb.head:end])
	} else {
		n := copy(p, rb.data[rb.head:])
		copy(p[n:want], rb.data[:end-c])
	}
	rb.head = end % c
	rb.size -= want
	return want, nil
}

// Buffered returns the number of queued bytes.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size
}

// Clear discards all queued bytes.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.head = 0
	rb.size = 0
}

// Close marks the buffer closed and wakes any blocked reader. Later writes
// are ignored.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
