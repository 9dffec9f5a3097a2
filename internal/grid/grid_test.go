package grid

import (
	"testing"

	"termcore/internal/model"
)

func TestNewDefaultSize(t *testing.T) {
	g := New(model.TerminalSize{Rows: 24, Cols: 80})
	snap := g.Snapshot("")
	if snap.Bounds.Rows != 24 || snap.Bounds.Cols != 80 {
		t.Fatalf("expected 24x80, got %dx%d", snap.Bounds.Rows, snap.Bounds.Cols)
	}
	if len(snap.Cells) != 24*80 {
		t.Fatalf("expected %d cells, got %d", 24*80, len(snap.Cells))
	}
}

func TestAdvanceWritesCells(t *testing.T) {
	g := New(model.TerminalSize{Rows: 5, Cols: 10})
	if _, err := g.Advance([]byte("Hi")); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	snap := g.Snapshot("")
	if snap.Cells[0].Cell.Char != 'H' || snap.Cells[1].Cell.Char != 'i' {
		t.Fatalf("expected Hi at row 0, got %q%q", snap.Cells[0].Cell.Char, snap.Cells[1].Cell.Char)
	}
	if snap.Cursor.Point.Column != 2 {
		t.Fatalf("expected cursor at column 2, got %d", snap.Cursor.Point.Column)
	}
}

func TestResizeResetsScroll(t *testing.T) {
	g := New(model.TerminalSize{Rows: 5, Cols: 10})
	g.ScrollUp(3)
	g.Resize(model.TerminalSize{Rows: 8, Cols: 20})
	snap := g.Snapshot("")
	if snap.DisplayOffset != 0 {
		t.Fatalf("expected display offset reset to 0 after resize, got %d", snap.DisplayOffset)
	}
	if snap.Bounds.Rows != 8 || snap.Bounds.Cols != 20 {
		t.Fatalf("expected 8x20 after resize, got %dx%d", snap.Bounds.Rows, snap.Bounds.Cols)
	}
}

func TestScrollAtBottomByDefault(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	snap := g.Snapshot("")
	if !snap.ScrolledToBottom {
		t.Fatalf("expected scrolled to bottom with no scrollback yet")
	}
	if snap.DisplayOffset != 0 {
		t.Fatalf("expected display offset 0, got %d", snap.DisplayOffset)
	}
}

func TestScrollUpBeyondScrollbackClamps(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	g.ScrollUp(1000)
	snap := g.Snapshot("")
	if snap.DisplayOffset != 0 {
		t.Fatalf("expected display offset clamped to 0 scrollback lines, got %d", snap.DisplayOffset)
	}
	if !snap.ScrolledToTop {
		t.Fatalf("expected scrolled to top when offset equals scrollback length")
	}
}

func TestScrollDownClampsAtZero(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	g.ScrollDown(5)
	snap := g.Snapshot("")
	if snap.DisplayOffset != 0 {
		t.Fatalf("expected display offset floor at 0, got %d", snap.DisplayOffset)
	}
}

func TestWideGlyphEmitsZeroCharSpacer(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	if _, err := g.Advance([]byte("中")); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	snap := g.Snapshot("")
	if snap.Cells[0].Cell.Char != '中' {
		t.Fatalf("expected 中 at (0,0), got %q", snap.Cells[0].Cell.Char)
	}
	if snap.Cells[1].Cell.Char != 0 {
		t.Fatalf("expected zero-char continuation at (0,1), got %q", snap.Cells[1].Cell.Char)
	}
	if len(snap.Cells) != 3*10 {
		t.Fatalf("expected %d cells, got %d", 3*10, len(snap.Cells))
	}
}

func TestScrollbackViewShowsOlderRows(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	if _, err := g.Advance([]byte("A\r\nB\r\nC\r\nD")); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	snap := g.Snapshot("")
	if !snap.ScrolledToBottom {
		t.Fatal("expected scrolled to bottom before any scroll")
	}
	if snap.Cells[0].Cell.Char != 'B' {
		t.Fatalf("expected 'B' on the top visible row, got %q", snap.Cells[0].Cell.Char)
	}

	g.ScrollUp(1)
	snap = g.Snapshot("")
	if snap.DisplayOffset != 1 {
		t.Fatalf("expected display offset 1, got %d", snap.DisplayOffset)
	}
	if snap.ScrolledToBottom {
		t.Fatal("expected ScrolledToBottom false while scrolled up")
	}
	if !snap.ScrolledToTop {
		t.Fatal("expected ScrolledToTop with the single scrollback row in view")
	}
	if snap.Cells[0].Cell.Char != 'A' {
		t.Fatalf("expected scrollback row 'A' on top, got %q", snap.Cells[0].Cell.Char)
	}
	if len(snap.Cells) != 3*10 {
		t.Fatalf("expected %d cells in scrolled view, got %d", 3*10, len(snap.Cells))
	}

	g.ScrollToBottom()
	snap = g.Snapshot("")
	if snap.DisplayOffset != 0 || !snap.ScrolledToBottom {
		t.Fatalf("expected viewport back at bottom, got offset=%d", snap.DisplayOffset)
	}
}

func TestTitleFallback(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	snap := g.Snapshot("fallback title")
	if snap.Title != "fallback title" {
		t.Fatalf("expected fallback title, got %q", snap.Title)
	}
}

func TestNoSelectionByDefault(t *testing.T) {
	g := New(model.TerminalSize{Rows: 3, Cols: 10})
	snap := g.Snapshot("")
	if snap.Selection != nil {
		t.Fatalf("expected nil selection before any selection is made")
	}
}
