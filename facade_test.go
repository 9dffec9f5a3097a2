package termcore

import (
	"runtime"
	"strings"
	"testing"
	"time"
)

func waitForSnapshot(t *testing.T, f *Facade, timeout time.Duration) Snapshot {
	t.Helper()
	select {
	case <-f.Wakeup():
		return f.CurrentSnapshot()
	case <-time.After(timeout):
		t.Fatal("timed out waiting for a snapshot")
		return Snapshot{}
	}
}

func lineText(snap Snapshot, line, cols int) string {
	var b strings.Builder
	for _, c := range snap.Cells {
		if c.Line != line {
			continue
		}
		if c.Cell.Char == 0 {
			continue
		}
		b.WriteRune(c.Cell.Char)
	}
	return b.String()
}

func TestEchoThroughLocalDevice(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a PTY-capable shell")
	}

	f := New(TerminalSize{Rows: 24, Cols: 80}, "", nil)
	defer f.Shutdown()

	dev, err := NewLocal(LocalConfig{
		Size:      TerminalSize{Rows: 24, Cols: 80},
		ShellPath: "/bin/cat",
	})
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	f.Attach(dev)
	waitForSnapshot(t, f, 2*time.Second)

	if _, err := f.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var snap Snapshot
	for time.Now().Before(deadline) {
		snap = waitForSnapshot(t, f, 2*time.Second)
		if strings.Contains(lineText(snap, 0, 80), "hello") {
			break
		}
	}
	if !strings.Contains(lineText(snap, 0, 80), "hello") {
		t.Fatalf("expected line 0 to contain 'hello', got %q", lineText(snap, 0, 80))
	}
}

func TestWriteWithoutAttachIsNoop(t *testing.T) {
	f := New(TerminalSize{Rows: 10, Cols: 20}, "", nil)
	defer f.Shutdown()

	n, err := f.Write([]byte("x"))
	if err != nil || n != 0 {
		t.Fatalf("expected silent no-op, got n=%d err=%v", n, err)
	}
}

func TestResizeThenSyncReflectsNewBounds(t *testing.T) {
	f := New(TerminalSize{Rows: 24, Cols: 80}, "", nil)
	defer f.Shutdown()

	f.Resize(TerminalSize{Rows: 10, Cols: 40})
	f.Sync()
	snap := waitForSnapshot(t, f, 2*time.Second)
	if snap.Bounds.Rows != 10 || snap.Bounds.Cols != 40 {
		t.Fatalf("expected 10x40, got %dx%d", snap.Bounds.Rows, snap.Bounds.Cols)
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	f := New(TerminalSize{Rows: 10, Cols: 20}, "", nil)
	f.Shutdown()
	f.Shutdown()
}
