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

// ColorKind distinguishes a Color's representation.
type ColorKind uint8

const (
	// ColorDefault means "use the terminal's default foreground/background".
	ColorDefault ColorKind = iota
	// ColorNamed is one of the 16 ANSI named colors, by index 0-15.
	ColorNamed
	// ColorRGB is a direct 24-bit color.
	ColorRGB
)

// Color is a named-or-RGB terminal color, used by Cell's foreground,
// background, and underline fields.
type Color struct {
	Kind  ColorKind
	Named uint8 // valid when Kind == ColorNamed, 0-15
	R, G, B uint8 // valid when Kind == ColorRGB
}

// DefaultColor is the zero value: "use the terminal default".
var DefaultColor = Color{Kind: ColorDefault}

// RGBColor constructs a direct 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// NamedColor constructs a named ANSI color (0-15).
func NamedColor(index uint8) Color {
	return Color{Kind: ColorNamed, Named: index}
}
