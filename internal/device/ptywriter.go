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
package device

import (
	"os"
	"sync"

	"termcore/internal/model"
)

// ptyWriter decouples keystroke writes from the PTY master so a child
// that has stopped draining its input (XOFF, a stopped foreground job)
// cannot stall the UI thread. Writes queue as pending chunks that a
// single drain goroutine feeds to the master; Write blocks only while
// adding its chunk would push the queue past maxBuffered bytes. Queued
// chunks reach the
// master in write order.
type ptyWriter struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond // a chunk arrived, or the writer is shutting down
	hasRoom  *sync.Cond // buffered bytes dropped below the cap, or the drain died

	master   *os.File
	pending  [][]byte
	buffered int
	max      int

	err    error
	closed bool
}

func newPtyWriter(master *os.File, maxBuffered int) *ptyWriter {
	w := &ptyWriter{master: master, max: maxBuffered}
	w.nonEmpty = sync.NewCond(&w.mu)
	w.hasRoom = sync.NewCond(&w.mu)
	go w.drain()
	return w
}

func (w *ptyWriter) drain() {
	for {
		w.mu.Lock()
		for len(w.pending) == 0 && !w.closed && w.err == nil {
			w.nonEmpty.Wait()
		}
		if w.closed || w.err != nil {
			w.mu.Unlock()
			return
		}
		chunk := w.pending[0]
		w.pending = w.pending[1:]
		w.buffered -= len(chunk)
		w.hasRoom.Broadcast()
		w.mu.Unlock()

		if _, err := w.master.Write(chunk); err != nil {
			w.mu.Lock()
			w.err = model.NewDeviceIOError("write", err)
			w.hasRoom.Broadcast()
			w.mu.Unlock()
			return
		}
	}
}

// Write queues p for delivery to the PTY master, blocking only while p
// would push the queue past its byte cap. A chunk larger than the cap is
// admitted alone once the queue is empty
// rather than deadlocking. Reports the drain goroutine's failure, if
// any, as the DeviceIOError it recorded.
func (w *ptyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for {
		if w.err != nil {
			return 0, w.err
		}
		if w.closed {
			return 0, model.ErrDeviceClosed
		}
		if w.buffered+len(p) <= w.max || len(w.pending) == 0 {
			break
		}
		w.hasRoom.Wait()
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	w.pending = append(w.pending, chunk)
	w.buffered += len(chunk)
	w.nonEmpty.Signal()
	return len(p), nil
}

// Close stops the drain goroutine and discards any queued chunks. The
// master itself is closed by the owning Local, which unblocks a write
// the drain has in flight. Safe to call more than once.
func (w *ptyWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.pending = nil
	w.buffered = 0
	w.nonEmpty.Broadcast()
	w.hasRoom.Broadcast()
	w.mu.Unlock()
	return nil
}
