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
package model

// CellFlags is a bitmask of cell style attributes.
type CellFlags uint16

const (
	FlagBold CellFlags = 1 << iota
	FlagDim
	FlagItalic
	FlagUnderline
	FlagStrikethrough
	FlagInverse
	FlagHidden
	FlagBlink
)

// Has reports whether all bits of mask are set.
func (f CellFlags) Has(mask CellFlags) bool { return f&mask == mask }

// Cell is one grid cell: a character (possibly a zero-width continuation
// of a wide glyph to its left), its colors, and its style flags.
// Invariant: a wide-glyph cell is always followed by exactly one
// continuation cell bearing the zero character and inheriting styling.
type Cell struct {
	Char           rune
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Flags          CellFlags
}

// IndexedCell pairs a Cell with its grid position. Ordering within a
// published cell vector is row-major, top-to-bottom, left-to-right.
type IndexedCell struct {
	Line   int
	Column int
	Cell   Cell
}
