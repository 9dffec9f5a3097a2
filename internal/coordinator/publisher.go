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

// Publisher is a single-slot latest-value channel for Snapshot values:
// every Publish overwrites the held value, and Current always returns
// the most recently published one, never an intermediate publication a
// slow reader missed. Wakeup carries one notification per publish,
// coalesced when the reader hasn't drained the previous one, so a slow
// renderer never backs up the coordinator.
type Publisher struct {
	mu      sync.Mutex
	current model.Snapshot
	wakeup  chan struct{}
}

// NewPublisher returns a Publisher with no value yet published; Current
// returns the zero Snapshot until the first Publish.
func NewPublisher() *Publisher {
	return &Publisher{wakeup: make(chan struct{}, 1)}
}

// Publish stores snap as the latest value and emits a Wakeup, coalescing
// with a pending unread one rather than blocking.
func (p *Publisher) Publish(snap model.Snapshot) {
	p.mu.Lock()
	p.current = snap
	p.mu.Unlock()

	select {
	case p.wakeup <- struct{}{}:
	default:
	}
}

// Current returns a clone of the most recently published snapshot.
func (p *Publisher) Current() model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Clone()
}

// Wakeup returns the channel the UI can select on to learn a new
// snapshot is available, without polling.
func (p *Publisher) Wakeup() <-chan struct{} {
	return p.wakeup
}
