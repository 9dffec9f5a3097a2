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
package coordinator

import (
	"log/slog"

	"termcore/internal/grid"
	"termcore/internal/model"
)

// Coordinator is the single long-lived loop owning the grid, the
// currently attached device, and the snapshot publisher. Construct
// with New and run its loop with Run in a dedicated goroutine.
type Coordinator struct {
	grid  *grid.Grid
	pub   *Publisher
	write *WriteHandle
	log   *slog.Logger

	input chan Command
	done  chan struct{}

	device   model.Device
	outputCh <-chan []byte
	dims     model.TerminalSize
	title    string
}

// New constructs a Coordinator with a fresh grid sized dims and no
// device attached. Call Run to start its loop.
func New(dims model.TerminalSize, title string, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		grid:  grid.New(dims),
		pub:   NewPublisher(),
		write: &WriteHandle{},
		log:   log,
		input: make(chan Command, 16),
		done:  make(chan struct{}),
		dims:  dims,
		title: title,
	}
}

// WriteHandle returns the mutex-guarded device reference the facade
// writes through on the keystroke hot path.
func (c *Coordinator) WriteHandle() *WriteHandle { return c.write }

// Publisher returns the snapshot publisher the facade reads from.
func (c *Coordinator) Publisher() *Publisher { return c.pub }

// Done is closed once Run's loop has exited after a Shutdown command.
func (c *Coordinator) Done() <-chan struct{} { return c.done }

// Send enqueues cmd for the coordinator's loop. If the loop has already
// exited the command is dropped, matching the facade's "failed send is a
// no-op" contract.
func (c *Coordinator) Send(cmd Command) {
	select {
	case c.input <- cmd:
	case <-c.done:
	}
}

// Run executes the coordinator's main loop until a Shutdown command is
// processed. Call in its own goroutine; it blocks until exit.
func (c *Coordinator) Run() {
	defer close(c.done)
	for {
		select {
		case cmd := <-c.input:
			if !c.handleCommand(cmd) {
				return
			}
		case chunk, ok := <-c.outputCh:
			if !ok {
				c.handleDetach()
				continue
			}
			c.handleChunk(chunk)
		}
	}
}

func (c *Coordinator) handleCommand(cmd Command) bool {
	switch cmd.Kind {
	case CmdAttachDevice:
		c.handleAttach(cmd.Device)
	case CmdWrite:
		if c.device != nil {
			if _, err := c.device.Write(cmd.Bytes); err != nil {
				c.log.Warn("coordinator write failed", "err", err)
			}
		}
	case CmdResize:
		if !cmd.Size.Valid() {
			c.log.Warn("rejecting resize below 1x1", "rows", cmd.Size.Rows, "cols", cmd.Size.Cols)
			return true
		}
		c.dims = cmd.Size
		if c.device != nil {
			if err := c.device.Resize(cmd.Size); err != nil {
				c.log.Warn("device resize failed", "err", err)
			}
		}
		c.grid.Resize(cmd.Size)
		c.publish()
	case CmdSync:
		c.publish()
	case CmdShutdown:
		c.shutdown()
		return false
	}
	return true
}

func (c *Coordinator) handleAttach(dev model.Device) {
	// Start the new device's reader before touching the old device, so a
	// rejected attach leaves the previous device in place.
	out, err := dev.StartReader()
	if err != nil {
		c.log.Error("attach rejected", "err", err)
		return
	}

	if c.device != nil {
		_ = c.device.Close()
	}

	c.device = dev
	c.outputCh = out
	c.write.set(dev)

	if err := dev.Resize(c.dims); err != nil {
		c.log.Warn("resize on attach failed", "err", err)
	}
	c.publish()
}

func (c *Coordinator) handleChunk(chunk []byte) {
	if _, err := c.grid.Advance(chunk); err != nil {
		c.log.Warn("grid advance failed", "err", err)
	}
	c.publish()
}

func (c *Coordinator) handleDetach() {
	if c.device != nil {
		_ = c.device.Close()
	}
	c.device = nil
	c.outputCh = nil
	c.write.set(nil)
	c.publish()
}

func (c *Coordinator) shutdown() {
	if c.device != nil {
		_ = c.device.Close()
	}
	c.device = nil
	c.outputCh = nil
	c.write.set(nil)
}

func (c *Coordinator) publish() {
	c.pub.Publish(c.grid.Snapshot(c.title))
}
