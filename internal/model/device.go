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

import "errors"

// Device is a polymorphic byte-duplex connection to a terminal peer: a
// local pseudo-terminal paired with a spawned shell, or a channel opened
// on an already-authenticated remote session. Both variants share this
// contract; the set of variants is closed at two (local, remote).
type Device interface {
	// Write sends bytes to the peer. Safe to call from the UI thread on
	// the keystroke hot path: it may briefly block on the device's own
	// internal write lock, but never on anything coordinator-owned.
	Write(p []byte) (int, error)

	// Resize forwards new window dimensions to the peer. Idempotent.
	Resize(size TerminalSize) error

	// StartReader spawns the device's blocking-read worker exactly once
	// and returns the channel it forwards non-empty chunks onto. The
	// channel is closed when the peer reaches EOF, read fails, or Close
	// is called. Calling StartReader a second time returns ErrAttachRejected.
	StartReader() (<-chan []byte, error)

	// Close requests peer closure. Safe to call more than once and safe
	// to call concurrently with in-flight writes.
	Close() error

	// ProcessID returns the child process id for local PTYs, and
	// (0, false) for variants with no meaningful process id.
	ProcessID() (uint32, bool)
}

var (
	// ErrDeviceClosed indicates the peer has gone away; the operation was dropped.
	ErrDeviceClosed = errors.New("termcore: device closed")
	// ErrAttachRejected indicates StartReader was called more than once, or the
	// reader thread failed to spawn; the previous device (if any) remains attached.
	ErrAttachRejected = errors.New("termcore: attach rejected")
	// ErrUnsupported indicates the operation has no meaning for this device variant.
	ErrUnsupported = errors.New("termcore: unsupported for this device")
	// ErrHostKeyRejected indicates a remote device's host key did not match the
	// known_hosts verification policy. Raised at device-construction time, never
	// seen by the coordinator.
	ErrHostKeyRejected = errors.New("termcore: remote host key rejected")
)

// DeviceIOError wraps a transport-level error observed on a device operation.
type DeviceIOError struct {
	Op  string
	Err error
}

func (e *DeviceIOError) Error() string {
	return "termcore: device io error during " + e.Op + ": " + e.Err.Error()
}

func (e *DeviceIOError) Unwrap() error { return e.Err }

// NewDeviceIOError wraps err as a DeviceIOError naming the failing operation.
func NewDeviceIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DeviceIOError{Op: op, Err: err}
}
