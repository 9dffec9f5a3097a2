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

import "termcore/internal/model"

// Sentinel errors surfaced at device and facade boundaries.
var (
	ErrDeviceClosed    = model.ErrDeviceClosed
	ErrAttachRejected  = model.ErrAttachRejected
	ErrUnsupported     = model.ErrUnsupported
	ErrHostKeyRejected = model.ErrHostKeyRejected
)

// DeviceIOError wraps a transport-level error observed on a device operation.
type DeviceIOError = model.DeviceIOError
