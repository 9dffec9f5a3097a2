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

import (
	"log/slog"
	"sync"

	"termcore/internal/coordinator"
)

// Facade is the UI's thread-safe handle onto the terminal core. Construct
// with New; Shutdown (or letting the process exit) releases the
// background coordinator and its attached device.
type Facade struct {
	co *coordinator.Coordinator

	shutdownOnce sync.Once
}

// New constructs a Facade with no device attached, sized dims, and
// starts its background coordinator.
func New(dims TerminalSize, title string, log *slog.Logger) *Facade {
	co := coordinator.New(dims, title, log)
	go co.Run()
	return &Facade{co: co}
}

// Attach adopts dev as the live device, closing and detaching any
// previously attached one first.
func (f *Facade) Attach(dev Device) {
	f.co.Send(coordinator.AttachDevice(dev))
}

// Write delivers bytes to the attached device directly, bypassing the
// coordinator's input channel for minimum keystroke latency. A no-op if
// no device is attached.
func (f *Facade) Write(p []byte) (int, error) {
	return f.co.WriteHandle().Write(p)
}

// Resize requests a new terminal size for both the grid and, if
// attached, the device.
func (f *Facade) Resize(size TerminalSize) {
	f.co.Send(coordinator.Resize(size))
}

// Sync forces a snapshot republication with no grid mutation.
func (f *Facade) Sync() {
	f.co.Send(coordinator.Sync())
}

// CurrentSnapshot returns the most recently published snapshot.
func (f *Facade) CurrentSnapshot() Snapshot {
	return f.co.Publisher().Current()
}

// Wakeup returns a channel the UI can select on to learn a new snapshot
// is available, without polling CurrentSnapshot on a timer.
func (f *Facade) Wakeup() <-chan struct{} {
	return f.co.Publisher().Wakeup()
}

// Shutdown stops the background coordinator, closing any attached
// device. Safe to call more than once.
func (f *Facade) Shutdown() {
	f.shutdownOnce.Do(func() {
		f.co.Send(coordinator.Shutdown())
	})
}
