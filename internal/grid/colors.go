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
package grid

import (
	imagecolor "image/color"

	headlessterm "github.com/danielgatis/go-headless-term"

	"termcore/internal/model"
)

// hexToModelColor parses the "#rrggbb" strings produced by
// Terminal.Snapshot(SnapshotDetailFull). An empty string (the zero
// value for an unset color) maps to model.DefaultColor.
func hexToModelColor(hex string) model.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return model.DefaultColor
	}
	r, okR := hexByte(hex[1:3])
	g, okG := hexByte(hex[3:5])
	b, okB := hexByte(hex[5:7])
	if !okR || !okG || !okB {
		return model.DefaultColor
	}
	return model.RGBColor(r, g, b)
}

func hexByte(s string) (uint8, bool) {
	hi, ok := hexNibble(s[0])
	if !ok {
		return 0, false
	}
	lo, ok := hexNibble(s[1])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// resolveColor converts a headlessterm color.Color into a model.Color.
// headlessterm only hex-resolves colors for the live buffer's own
// Snapshot call; scrollback lines come back as raw cell data, so this
// mirrors headlessterm's own default-palette resolution for those rows.
func resolveColor(c imagecolor.Color, fg bool) model.Color {
	if c == nil {
		return model.DefaultColor
	}

	switch v := c.(type) {
	case imagecolor.RGBA:
		return model.RGBColor(v.R, v.G, v.B)
	case *headlessterm.IndexedColor:
		if v.Index >= 0 && v.Index < 16 {
			return model.NamedColor(uint8(v.Index))
		}
		if v.Index >= 0 && v.Index < 256 {
			rgba := headlessterm.DefaultPalette[v.Index]
			return model.RGBColor(rgba.R, rgba.G, rgba.B)
		}
		return model.DefaultColor
	case *headlessterm.NamedColor:
		return resolveNamedColor(v.Name, fg)
	default:
		r, g, b, _ := c.RGBA()
		return model.RGBColor(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

// resolveNamedColor resolves headlessterm's semantic named-color indices
// (0-15 are the basic ANSI set; 256 and up are synthesized defaults such
// as "default foreground" or "dim red").
func resolveNamedColor(name int, fg bool) model.Color {
	switch {
	case name >= 0 && name < 16:
		return model.NamedColor(uint8(name))
	case name == headlessterm.NamedColorForeground,
		name == headlessterm.NamedColorBackground,
		name == headlessterm.NamedColorCursor,
		name == headlessterm.NamedColorBrightForeground,
		name == headlessterm.NamedColorDimForeground:
		return model.DefaultColor
	case name >= 259 && name <= 266:
		// Dim variants of the 8 basic colors; report the undimmed base,
		// the closest named equivalent model.Color can express.
		return model.NamedColor(uint8(name - 259))
	default:
		return model.DefaultColor
	}
}

func resolveFlags(cell *headlessterm.Cell) model.CellFlags {
	var f model.CellFlags
	if cell.HasFlag(headlessterm.CellFlagBold) {
		f |= model.FlagBold
	}
	if cell.HasFlag(headlessterm.CellFlagDim) {
		f |= model.FlagDim
	}
	if cell.HasFlag(headlessterm.CellFlagItalic) {
		f |= model.FlagItalic
	}
	if cell.HasFlag(headlessterm.CellFlagUnderline) ||
		cell.HasFlag(headlessterm.CellFlagDoubleUnderline) ||
		cell.HasFlag(headlessterm.CellFlagCurlyUnderline) ||
		cell.HasFlag(headlessterm.CellFlagDottedUnderline) ||
		cell.HasFlag(headlessterm.CellFlagDashedUnderline) {
		f |= model.FlagUnderline
	}
	if cell.HasFlag(headlessterm.CellFlagStrike) {
		f |= model.FlagStrikethrough
	}
	if cell.HasFlag(headlessterm.CellFlagReverse) {
		f |= model.FlagInverse
	}
	if cell.HasFlag(headlessterm.CellFlagHidden) {
		f |= model.FlagHidden
	}
	if cell.HasFlag(headlessterm.CellFlagBlinkSlow) || cell.HasFlag(headlessterm.CellFlagBlinkFast) {
		f |= model.FlagBlink
	}
	return f
}

// snapshotCellToModel converts one hex-resolved headlessterm.SnapshotCell,
// as returned by Terminal.Snapshot(SnapshotDetailFull), into a model.Cell.
// The engine renders wide-glyph spacer cells as " " and marks them with
// WideSpacer; the model's invariant wants the zero character there instead.
func snapshotCellToModel(cell headlessterm.SnapshotCell) model.Cell {
	ch := rune(' ')
	if cell.WideSpacer {
		ch = 0
	} else if cell.Char != "" {
		for _, r := range cell.Char {
			ch = r
			break
		}
	}
	attrs := cell.Attributes
	var flags model.CellFlags
	if attrs.Bold {
		flags |= model.FlagBold
	}
	if attrs.Dim {
		flags |= model.FlagDim
	}
	if attrs.Italic {
		flags |= model.FlagItalic
	}
	if attrs.Underline != "" {
		flags |= model.FlagUnderline
	}
	if attrs.Strikethrough {
		flags |= model.FlagStrikethrough
	}
	if attrs.Reverse {
		flags |= model.FlagInverse
	}
	if attrs.Hidden {
		flags |= model.FlagHidden
	}
	if attrs.Blink != "" {
		flags |= model.FlagBlink
	}
	return model.Cell{
		Char:  ch,
		Fg:    hexToModelColor(cell.Fg),
		Bg:    hexToModelColor(cell.Bg),
		Flags: flags,
	}
}

// scrollbackCellToModel converts one raw headlessterm.Cell, as returned
// by Terminal.ScrollbackLine, into a model.Cell.
func scrollbackCellToModel(cell headlessterm.Cell) model.Cell {
	ch := cell.Char
	if ch == 0 && !cell.IsWideSpacer() {
		ch = ' '
	}
	var underline model.Color
	if cell.UnderlineColor != nil {
		underline = resolveColor(cell.UnderlineColor, true)
	} else {
		underline = model.DefaultColor
	}
	return model.Cell{
		Char:           ch,
		Fg:             resolveColor(cell.Fg, true),
		Bg:             resolveColor(cell.Bg, false),
		UnderlineColor: underline,
		Flags:          resolveFlags(&cell),
	}
}
