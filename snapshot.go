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
package termcore

import "termcore/internal/model"

// Snapshot, Cell, and their supporting types are re-exported from
// internal/model so callers never need to import an internal package.
type (
	Snapshot            = model.Snapshot
	Cell                = model.Cell
	IndexedCell         = model.IndexedCell
	Color               = model.Color
	ColorKind           = model.ColorKind
	CellFlags           = model.CellFlags
	Point               = model.Point
	Selection           = model.Selection
	SelectionDirection  = model.SelectionDirection
	Cursor              = model.Cursor
	CursorShape         = model.CursorShape
	Mode                = model.Mode
	Bounds              = model.Bounds
)

const (
	ColorDefault = model.ColorDefault
	ColorNamed   = model.ColorNamed
	ColorRGB     = model.ColorRGB
)

const (
	FlagBold          = model.FlagBold
	FlagDim           = model.FlagDim
	FlagItalic        = model.FlagItalic
	FlagUnderline     = model.FlagUnderline
	FlagStrikethrough = model.FlagStrikethrough
	FlagInverse       = model.FlagInverse
	FlagHidden        = model.FlagHidden
	FlagBlink         = model.FlagBlink
)

const (
	CursorBlock     = model.CursorBlock
	CursorUnderline = model.CursorUnderline
	CursorBar       = model.CursorBar
)

const (
	ModeApplicationCursor = model.ModeApplicationCursor
	ModeBracketedPaste    = model.ModeBracketedPaste
	ModeMouseReportClick  = model.ModeMouseReportClick
	ModeMouseReportMotion = model.ModeMouseReportMotion
	ModeAlternateScreen   = model.ModeAlternateScreen
)

const (
	SelectionForward  = model.SelectionForward
	SelectionBackward = model.SelectionBackward
)

// DefaultColor is "use the terminal's default foreground/background".
var DefaultColor = model.DefaultColor

// RGBColor constructs a direct 24-bit color.
func RGBColor(r, g, b uint8) Color { return model.RGBColor(r, g, b) }

// NamedColor constructs a named ANSI color (0-15).
func NamedColor(index uint8) Color { return model.NamedColor(index) }
