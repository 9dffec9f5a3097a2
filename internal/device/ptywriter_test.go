package device

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"termcore/internal/model"
)

func TestPtyWriterDeliversChunksInOrder(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	pw := newPtyWriter(w, 1024)
	for _, chunk := range []string{"one", "two", "three"} {
		if _, err := pw.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q): %v", chunk, err)
		}
	}

	want := []byte("onetwothree")
	got := make([]byte, 0, len(want))
	buf := make([]byte, 64)
	for len(got) < len(want) {
		n, err := r.Read(buf)
		if err != nil {
			t.Fatalf("read: %v (got %q so far)", err, got)
		}
		got = append(got, buf[:n]...)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %q in order, got %q", want, got)
	}

	pw.Close()
	w.Close()
}

func TestPtyWriterWriteAfterCloseFails(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	pw := newPtyWriter(w, 1024)
	if err := pw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := pw.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := pw.Write([]byte("x")); !errors.Is(err, model.ErrDeviceClosed) {
		t.Fatalf("expected ErrDeviceClosed after Close, got %v", err)
	}
}

func TestPtyWriterSurfacesDrainErrorAsDeviceIO(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	r.Close()

	pw := newPtyWriter(w, 1024)
	// With the read side gone the drain's write fails; later writes must
	// report the recorded DeviceIOError instead of queueing forever.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		_, err = pw.Write([]byte("x"))
		if err != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	var ioErr *model.DeviceIOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected a DeviceIOError once the drain failed, got %v", err)
	}
	w.Close()
}

func TestPtyWriterAdmitsOversizedChunkWhenIdle(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer w.Close()
	defer r.Close()

	pw := newPtyWriter(w, 8)
	defer pw.Close()
	go func() {
		_, _ = io.Copy(io.Discard, r)
	}()

	big := bytes.Repeat([]byte("z"), 64)
	done := make(chan error, 1)
	go func() {
		_, err := pw.Write(big)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Write of oversized chunk: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("oversized chunk deadlocked instead of being admitted alone")
	}
}
