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
	"golang.org/x/crypto/ssh"

	"termcore/internal/device"
	"termcore/internal/model"
)

// Device is the polymorphic byte-duplex connection a Facade attaches to.
type Device = model.Device

// LocalConfig configures a local PTY device. See NewLocal.
type LocalConfig = device.LocalConfig

// NewLocal spawns a child shell attached to a fresh PTY pair.
func NewLocal(cfg LocalConfig) (Device, error) {
	return device.NewLocal(cfg)
}

// RemoteConfig configures a remote shell device opened over SSH. See NewRemote.
type RemoteConfig = device.RemoteConfig

// Auth is a tagged authentication method for a remote device.
type Auth = device.Auth

const (
	AuthPassword = device.AuthPassword
	AuthKey      = device.AuthKey
	AuthAgent    = device.AuthAgent
)

// NewRemote dials and authenticates a remote shell device.
func NewRemote(cfg RemoteConfig) (Device, error) {
	return device.NewRemote(cfg)
}

// DefaultHostKeyCallback builds a knownhosts-backed host key callback
// rooted at knownHostsPath, or $HOME/.ssh/known_hosts when empty.
func DefaultHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	return device.DefaultHostKeyCallback(knownHostsPath)
}
