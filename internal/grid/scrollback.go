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
package grid

import headlessterm "github.com/danielgatis/go-headless-term"

// defaultMaxScrollback bounds the in-memory scrollback ring.
const defaultMaxScrollback = 10000

// memoryScrollback is a bounded in-memory ScrollbackProvider. The VTE
// engine ships only the storage hook; without a real provider it
// discards scrolled-off lines, so the grid supplies this one.
type memoryScrollback struct {
	lines    [][]headlessterm.Cell
	maxLines int
}

func newMemoryScrollback(maxLines int) *memoryScrollback {
	return &memoryScrollback{maxLines: maxLines}
}

func (s *memoryScrollback) Push(line []headlessterm.Cell) {
	s.lines = append(s.lines, line)
	s.trim()
}

func (s *memoryScrollback) Len() int { return len(s.lines) }

func (s *memoryScrollback) Line(index int) []headlessterm.Cell {
	if index < 0 || index >= len(s.lines) {
		return nil
	}
	return s.lines[index]
}

func (s *memoryScrollback) Pop() []headlessterm.Cell {
	if len(s.lines) == 0 {
		return nil
	}
	last := s.lines[len(s.lines)-1]
	s.lines = s.lines[:len(s.lines)-1]
	return last
}

func (s *memoryScrollback) Clear() { s.lines = s.lines[:0] }

func (s *memoryScrollback) SetMaxLines(max int) {
	s.maxLines = max
	s.trim()
}

func (s *memoryScrollback) MaxLines() int { return s.maxLines }

func (s *memoryScrollback) trim() {
	if s.maxLines > 0 && len(s.lines) > s.maxLines {
		s.lines = s.lines[len(s.lines)-s.maxLines:]
	}
}

var _ headlessterm.ScrollbackProvider = (*memoryScrollback)(nil)
