/*
 * nosshtradamus: predictive terminal emulation for SSH
 * Copyright 2019 Daniel Selifonov
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package grid holds the in-memory terminal state: a VTE-backed grid
// fed a device's raw output and queried for a renderable Snapshot.
package grid

import (
	"sync"

	headlessterm "github.com/danielgatis/go-headless-term"

	"termcore/internal/model"
)

// Grid wraps a VTE-backed terminal buffer, adding the scroll-viewport
// bookkeeping the underlying engine doesn't track on its own. All
// methods are safe for concurrent use. The coordinator, its only
// caller, issues Advance, Resize, and Snapshot from its single loop
// goroutine, so size changes never interleave with an
// Advance-then-Snapshot pair.
type Grid struct {
	mu   sync.Mutex
	term *headlessterm.Terminal

	// displayOffset is the number of scrollback rows above the live
	// buffer currently scrolled into view. 0 means scrolled to bottom.
	displayOffset int

	// pixelWidth/pixelHeight are the advisory per-cell-grid pixel
	// dimensions last supplied via New or Resize, carried through to
	// Snapshot's Bounds since the VTE engine itself has no notion of
	// pixels.
	pixelWidth  int
	pixelHeight int
}

// New creates a Grid sized rows x cols. Values <= 0 fall back to 24x80.
func New(size model.TerminalSize) *Grid {
	rows, cols := int(size.Rows), int(size.Cols)
	if rows <= 0 || cols <= 0 {
		rows, cols = 24, 80
	}
	return &Grid{
		term: headlessterm.New(
			headlessterm.WithSize(rows, cols),
			headlessterm.WithScrollback(newMemoryScrollback(defaultMaxScrollback)),
		),
		pixelWidth:  int(size.PixelWidth),
		pixelHeight: int(size.PixelHeight),
	}
}

// Advance feeds raw device output through the VTE, updating cursor,
// grid contents, and mode state.
func (g *Grid) Advance(data []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.term.Write(data)
}

// Resize changes the grid's dimensions, discarding cells beyond the new
// bounds. The scroll viewport is reset to the bottom, since scrollback
// indices shift under a resize.
func (g *Grid) Resize(size model.TerminalSize) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.term.Resize(int(size.Rows), int(size.Cols))
	g.displayOffset = 0
	g.pixelWidth = int(size.PixelWidth)
	g.pixelHeight = int(size.PixelHeight)
}

// ScrollUp scrolls the viewport toward older scrollback by n rows,
// clamped to the oldest available line.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.displayOffset += n
	if max := g.term.ScrollbackLen(); g.displayOffset > max {
		g.displayOffset = max
	}
}

// ScrollDown scrolls the viewport toward the live buffer by n rows,
// clamped to 0 (the bottom).
func (g *Grid) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.displayOffset -= n
	if g.displayOffset < 0 {
		g.displayOffset = 0
	}
}

// ScrollToBottom resets the viewport to the live buffer.
func (g *Grid) ScrollToBottom() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.displayOffset = 0
}

// Snapshot builds an immutable render of the grid's current state,
// including the active scroll viewport, cursor, mode bits, and
// selection. title is used when the VTE hasn't seen an OSC title
// sequence yet.
func (g *Grid) Snapshot(title string) model.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, cols := g.term.Rows(), g.term.Cols()
	scrollback := g.term.ScrollbackLen()
	offset := g.displayOffset
	if offset > scrollback {
		offset = scrollback
	}

	cells := make([]model.IndexedCell, 0, rows*cols)
	if offset == 0 {
		full := g.term.Snapshot(headlessterm.SnapshotDetailFull)
		for r := 0; r < rows; r++ {
			var line []headlessterm.SnapshotCell
			if r < len(full.Lines) {
				line = full.Lines[r].Cells
			}
			for c := 0; c < cols; c++ {
				mc := model.Cell{Char: ' '}
				if c < len(line) {
					mc = snapshotCellToModel(line[c])
				}
				cells = append(cells, model.IndexedCell{Line: r, Column: c, Cell: mc})
			}
		}
	} else {
		// Scrollback lines keep the width they had when they scrolled
		// out, so rows are padded with blanks to the current cols to
		// keep the cell vector exactly rows*cols.
		for r := 0; r < rows; r++ {
			historical := scrollback - offset + r
			var rowCells []headlessterm.Cell
			if historical < scrollback {
				rowCells = g.term.ScrollbackLine(historical)
			}
			for c := 0; c < cols; c++ {
				mc := model.Cell{Char: ' '}
				if rowCells != nil {
					if c < len(rowCells) {
						mc = scrollbackCellToModel(rowCells[c])
					}
				} else if liveRow := historical - scrollback; liveRow >= 0 {
					if cell := g.term.Cell(liveRow, c); cell != nil {
						mc = scrollbackCellToModel(*cell)
					}
				}
				cells = append(cells, model.IndexedCell{Line: r, Column: c, Cell: mc})
			}
		}
	}

	cursorRow, cursorCol := g.term.CursorPos()
	cursorChar := rune(' ')
	if cell := g.term.Cell(cursorRow, cursorCol); cell != nil && cell.Char != 0 {
		cursorChar = cell.Char
	}

	snapTitle := g.term.Title()
	if snapTitle == "" {
		snapTitle = title
	}

	var sel *model.Selection
	if g.term.HasSelection() {
		raw := g.term.GetSelection()
		sel = &model.Selection{
			Start:     model.Point{Line: raw.Start.Row, Column: raw.Start.Col},
			End:       model.Point{Line: raw.End.Row, Column: raw.End.Col},
			Direction: model.SelectionForward,
		}
	}

	return model.Snapshot{
		Cells:            cells,
		Mode:             resolveMode(g.term),
		DisplayOffset:    offset,
		Selection:        sel,
		Cursor:           resolveCursor(g.term, cursorRow, cursorCol),
		CursorChar:       cursorChar,
		Bounds:           model.Bounds{Rows: rows, Cols: cols, PixelWidth: g.pixelWidth, PixelHeight: g.pixelHeight},
		ScrolledToTop:    offset == scrollback,
		ScrolledToBottom: offset == 0,
		Title:            snapTitle,
	}
}

func resolveMode(t *headlessterm.Terminal) model.Mode {
	var m model.Mode
	if t.HasMode(headlessterm.ModeCursorKeys) {
		m |= model.ModeApplicationCursor
	}
	if t.HasMode(headlessterm.ModeBracketedPaste) {
		m |= model.ModeBracketedPaste
	}
	if t.HasMode(headlessterm.ModeReportMouseClicks) {
		m |= model.ModeMouseReportClick
	}
	if t.HasMode(headlessterm.ModeReportCellMouseMotion) || t.HasMode(headlessterm.ModeReportAllMouseMotion) {
		m |= model.ModeMouseReportMotion
	}
	if t.IsAlternateScreen() {
		m |= model.ModeAlternateScreen
	}
	return m
}

func resolveCursor(t *headlessterm.Terminal, row, col int) model.Cursor {
	shape := model.CursorBlock
	switch t.CursorStyle() {
	case headlessterm.CursorStyleBlinkingUnderline, headlessterm.CursorStyleSteadyUnderline:
		shape = model.CursorUnderline
	case headlessterm.CursorStyleBlinkingBar, headlessterm.CursorStyleSteadyBar:
		shape = model.CursorBar
	}
	return model.Cursor{
		Point:   model.Point{Line: row, Column: col},
		Shape:   shape,
		Visible: t.CursorVisible(),
	}
}
