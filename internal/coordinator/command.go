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

// Package coordinator drives the single event loop that sequences
// device output, input commands, and snapshot publication.
package coordinator

import "termcore/internal/model"

// CommandKind tags a Command's variant.
type CommandKind int

const (
	CmdAttachDevice CommandKind = iota
	CmdWrite
	CmdResize
	CmdSync
	CmdShutdown
)

// Command is the tagged union accepted on the coordinator's input
// channel. Output chunks read from the attached device's reader
// channel are injected directly by the main loop and never travel
// through this type.
type Command struct {
	Kind   CommandKind
	Device model.Device       // CmdAttachDevice
	Bytes  []byte             // CmdWrite
	Size   model.TerminalSize // CmdResize
}

// AttachDevice requests the coordinator adopt dev as the live device,
// closing and detaching any previously attached one first.
func AttachDevice(dev model.Device) Command {
	return Command{Kind: CmdAttachDevice, Device: dev}
}

// Write requests dev.Write(p) on the coordinator's own goroutine. The
// facade's hot keystroke path bypasses this and writes directly.
func Write(p []byte) Command {
	return Command{Kind: CmdWrite, Bytes: p}
}

// Resize requests a new terminal size, forwarded to the device and the grid.
func Resize(size model.TerminalSize) Command {
	return Command{Kind: CmdResize, Size: size}
}

// Sync requests a snapshot republication with no grid mutation.
func Sync() Command { return Command{Kind: CmdSync} }

// Shutdown requests the coordinator exit its loop and release all
// owned resources.
func Shutdown() Command { return Command{Kind: CmdShutdown} }
