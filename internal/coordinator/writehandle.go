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
	"sync"

	"termcore/internal/model"
)

// WriteHandle is a mutex-guarded reference to the currently attached
// device, shared between the coordinator (which sets it on attach/detach)
// and the facade (which calls Write directly from the UI's keystroke
// path, bypassing the input command channel entirely).
type WriteHandle struct {
	mu     sync.Mutex
	device model.Device
}

func (h *WriteHandle) set(d model.Device) {
	h.mu.Lock()
	h.device = d
	h.mu.Unlock()
}

// Write sends p to the currently attached device. If no device is
// attached, it is a silent no-op, per the facade's write-with-no-device
// contract.
func (h *WriteHandle) Write(p []byte) (int, error) {
	h.mu.Lock()
	d := h.device
	h.mu.Unlock()
	if d == nil {
		return 0, nil
	}
	return d.Write(p)
}
