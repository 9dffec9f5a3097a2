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
	"os/exec"
	"runtime"
	"sync"

	"github.com/creack/pty"

	"termcore/internal/model"
)

// LocalConfig configures a local PTY device.
type LocalConfig struct {
	Size model.TerminalSize
	// ShellPath overrides the shell to spawn. Empty means $SHELL, falling
	// back to /bin/sh on Unix or cmd.exe on Windows.
	ShellPath string
	// Env, when non-nil, replaces the spawned shell's environment
	// entirely; otherwise it inherits the current process's environment
	// plus TERM=xterm-256color.
	Env []string
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	if runtime.GOOS == "windows" {
		return "cmd.exe"
	}
	return "/bin/sh"
}

// Local is the local-PTY Device variant: a pseudo-terminal pair with a
// spawned child shell. Close closes the master and kills the child
// process.
type Local struct {
	mu sync.Mutex

	cmd    *exec.Cmd
	master *os.File
	writer *ptyWriter

	readerStarted bool
	closed        bool
}

// NewLocal spawns a child shell attached to a fresh PTY pair sized per cfg.Size.
func NewLocal(cfg LocalConfig) (*Local, error) {
	if !cfg.Size.Valid() {
		cfg.Size = model.TerminalSize{Rows: 24, Cols: 80}
	}

	shellPath := cfg.ShellPath
	if shellPath == "" {
		shellPath = defaultShell()
	}

	cmd := exec.Command(shellPath)
	if cfg.Env != nil {
		cmd.Env = cfg.Env
	} else {
		cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: cfg.Size.Rows,
		Cols: cfg.Size.Cols,
		X:    cfg.Size.PixelWidth,
		Y:    cfg.Size.PixelHeight,
	})
	if err != nil {
		return nil, model.NewDeviceIOError("start", err)
	}

	return &Local{
		cmd:    cmd,
		master: master,
		writer: newPtyWriter(master, 64*1024),
	}, nil
}

func (l *Local) Write(p []byte) (int, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return 0, model.ErrDeviceClosed
	}

	return l.writer.Write(p)
}

func (l *Local) Resize(size model.TerminalSize) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return model.ErrDeviceClosed
	}
	if !size.Valid() {
		return model.NewDeviceIOError("resize", os.ErrInvalid)
	}

	err := pty.Setsize(l.master, &pty.Winsize{
		Rows: size.Rows,
		Cols: size.Cols,
		X:    size.PixelWidth,
		Y:    size.PixelHeight,
	})
	if err != nil {
		return model.NewDeviceIOError("resize", err)
	}
	return nil
}

func (l *Local) StartReader() (<-chan []byte, error) {
	l.mu.Lock()
	if l.readerStarted {
		l.mu.Unlock()
		return nil, model.ErrAttachRejected
	}
	l.readerStarted = true
	master := l.master
	l.mu.Unlock()

	out := make(chan []byte, 4)
	go func() {
		defer close(out)
		buf := make([]byte, 16*1024)
		for {
			n, err := master.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				out <- chunk
			}
			if err != nil {
				return
			}
		}
	}()
	return out, nil
}

func (l *Local) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	_ = l.writer.Close()
	err := l.master.Close()
	if l.cmd != nil && l.cmd.Process != nil {
		_ = l.cmd.Process.Kill()
	}
	if err != nil {
		return model.NewDeviceIOError("close", err)
	}
	return nil
}

func (l *Local) ProcessID() (uint32, bool) {
	if l.cmd == nil || l.cmd.Process == nil {
		return 0, false
	}
	return uint32(l.cmd.Process.Pid), true
}
