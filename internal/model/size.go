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

// TerminalSize describes the window dimensions forwarded to a device and to
// the grid on resize. Pixel fields are advisory and may be zero.
type TerminalSize struct {
	Rows        uint16
	Cols        uint16
	PixelWidth  uint16
	PixelHeight uint16
}

// Valid reports whether the size has at least one row and one column.
// Device Resize calls and the coordinator's resize handling reject
// anything less.
func (s TerminalSize) Valid() bool {
	return s.Rows >= 1 && s.Cols >= 1
}
