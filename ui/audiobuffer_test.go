package ui

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func seq(start, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(start + i)
	}
	return b
}

func readN(t *testing.T, rb *AudioRingBuffer, n int) []byte {
	t.Helper()
	p := make([]byte, n)
	got, err := rb.Read(p)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return p[:got]
}

func TestAudioRingBuffer_WriteRead(t *testing.T) {
	rb := NewAudioRingBuffer(16)
	if d := rb.Write(seq(0, 10)); d != 0 {
		t.Fatalf("dropped %d", d)
	}
	if rb.Buffered() != 10 {
		t.Fatalf("Buffered() = %d", rb.Buffered())
	}
	if got := readN(t, rb, 4); !bytes.Equal(got, seq(0, 4)) {
		t.Errorf("first read = %v", got)
	}
	// Reading more than is queued returns what is there.
	if got := readN(t, rb, 100); !bytes.Equal(got, seq(4, 6)) {
		t.Errorf("second read = %v", got)
	}
	if rb.Buffered() != 0 {
		t.Errorf("Buffered() = %d after draining", rb.Buffered())
	}
}

func TestAudioRingBuffer_Wraparound(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write(seq(0, 6))
	readN(t, rb, 6)
	rb.Write(seq(10, 7)) // crosses the end of the backing array
	if got := readN(t, rb, 7); !bytes.Equal(got, seq(10, 7)) {
		t.Errorf("read = %v, want %v", got, seq(10, 7))
	}
}

func TestAudioRingBuffer_OverflowDropsOldest(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write(seq(0, 6))
	if d := rb.Write(seq(6, 4)); d != 2 {
		t.Errorf("dropped %d, want 2", d)
	}
	if got := readN(t, rb, 8); !bytes.Equal(got, seq(2, 8)) {
		t.Errorf("read = %v, want %v", got, seq(2, 8))
	}
}

func TestAudioRingBuffer_OversizedWrite(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write(seq(100, 3))
	if d := rb.Write(seq(0, 20)); d != 15 {
		t.Errorf("dropped %d, want 15", d)
	}
	if got := readN(t, rb, 8); !bytes.Equal(got, seq(12, 8)) {
		t.Errorf("read = %v, want the last 8 bytes", got)
	}
}

func TestAudioRingBuffer_Clear(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write(seq(0, 5))
	rb.Clear()
	if rb.Buffered() != 0 {
		t.Fatalf("Buffered() = %d after Clear", rb.Buffered())
	}
	rb.Write(seq(50, 2))
	if got := readN(t, rb, 8); !bytes.Equal(got, seq(50, 2)) {
		t.Errorf("read after Clear = %v", got)
	}
}

func TestAudioRingBuffer_ReadBlocksUntilWrite(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	done := make(chan []byte)
	go func() {
		p := make([]byte, 4)
		n, _ := rb.Read(p)
		done <- p[:n]
	}()

	select {
	case <-done:
		t.Fatal("Read returned on an empty buffer")
	case <-time.After(20 * time.Millisecond):
	}

	rb.Write(seq(7, 3))
	select {
	case got := <-done:
		if !bytes.Equal(got, seq(7, 3)) {
			t.Errorf("read = %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("Read did not wake after Write")
	}
}

func TestAudioRingBuffer_Close(t *testing.T) {
	rb := NewAudioRingBuffer(8)
	rb.Write(seq(0, 2))

	errc := make(chan error, 1)
	rb.Close()
	if got := readN(t, rb, 8); len(got) != 2 {
		t.Fatalf("queued data lost on Close: %v", got)
	}
	go func() {
		_, err := rb.Read(make([]byte, 4))
		errc <- err
	}()
	select {
	case err := <-errc:
		if !errors.Is(err, io.EOF) {
			t.Errorf("Read after Close = %v, want EOF", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Read blocked on a closed buffer")
	}
	if d := rb.Write(seq(0, 4)); d != 0 || rb.Buffered() != 0 {
		t.Errorf("Write after Close queued data")
	}
}

func TestAppendStereo(t *testing.T) {
	got := appendStereo(nil, []int16{0x0102, -2})
	want := []byte{0x02, 0x01, 0x02, 0x01, 0xFE, 0xFF, 0xFE, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("appendStereo = %x, want %x", got, want)
	}
	if len(appendStereo(nil, make([]int16, BlockSize))) != BlockSize*bytesPerFrame {
		t.Error("one block does not fill BlockSize frames")
	}
}
