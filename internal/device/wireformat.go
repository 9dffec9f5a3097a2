/*
 * nosshtradamus: predictive terminal emulation for SSH
 * Copyright 2019-2023 Daniel Selifonov
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
	"bytes"
	"encoding/binary"
	"fmt"
)

// ptyRequest is the decoded payload of an SSH "pty-req" channel request,
// as sent by Remote's session.RequestPty call.
type ptyRequest struct {
	Term   string
	Width  uint32
	Height uint32
}

func parsePtyRequest(payload []byte) (*ptyRequest, error) {
	r := bytes.NewReader(payload)
	var termLen uint32
	if err := binary.Read(r, binary.BigEndian, &termLen); err != nil {
		return nil, err
	}
	term := make([]byte, termLen)
	if err := binary.Read(r, binary.BigEndian, &term); err != nil {
		return nil, err
	}
	var width, height uint32
	if err := binary.Read(r, binary.BigEndian, &width); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &height); err != nil {
		return nil, err
	}
	return &ptyRequest{Term: string(term), Width: width, Height: height}, nil
}

func (p *ptyRequest) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("[Term: %s, Width: %d, Height: %d]", p.Term, p.Width, p.Height)
}

// windowChangeRequest is the decoded payload of an SSH "window-change"
// channel request, as sent by Remote's session.WindowChange call.
type windowChangeRequest struct {
	Width  uint32
	Height uint32
}

func parseWindowChangeRequest(payload []byte) (*windowChangeRequest, error) {
	r := bytes.NewReader(payload)
	var width, height uint32
	if err := binary.Read(r, binary.BigEndian, &width); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &height); err != nil {
		return nil, err
	}
	return &windowChangeRequest{Width: width, Height: height}, nil
}
