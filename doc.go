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

// Package termcore connects a byte-duplex device (a local pseudo-terminal
// or a remote shell over SSH) to an in-memory VTE-backed grid and
// publishes a renderable Snapshot a UI layer can poll or wait on.
//
// The entry point is Facade: New constructs one and starts its
// background coordinator; Attach hands it a device; Write delivers
// keystrokes on the fast path; CurrentSnapshot and Wakeup drive
// rendering.
package termcore
