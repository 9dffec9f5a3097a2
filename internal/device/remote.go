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
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"termcore/internal/model"
)

// AuthKind tags a RemoteConfig's authentication method.
type AuthKind int

const (
	AuthPassword AuthKind = iota
	AuthKey
	AuthAgent
)

// Auth is a tagged authentication method for a remote device: a
// password, a private key (optionally passphrase-protected), or a
// running ssh-agent.
type Auth struct {
	Kind       AuthKind
	Password   string // AuthPassword
	KeyPath    string // AuthKey
	Passphrase string // AuthKey, optional
	AgentSock  string // AuthAgent; empty means $SSH_AUTH_SOCK
}

// RemoteConfig configures a remote shell device opened over an
// authenticated SSH session.
type RemoteConfig struct {
	Host string
	Port int
	User string
	Auth Auth
	Size model.TerminalSize

	// HostKeyCallback verifies the target's host key. Required; use
	// DefaultHostKeyCallback for the usual $HOME/.ssh/known_hosts default.
	HostKeyCallback ssh.HostKeyCallback

	ConnectTimeout time.Duration
}

// DefaultHostKeyCallback builds a knownhosts-backed callback rooted at
// knownHostsPath, or $HOME/.ssh/known_hosts when knownHostsPath is empty.
// Verification failures are reported as model.ErrHostKeyRejected.
func DefaultHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	if knownHostsPath == "" {
		home, ok := os.LookupEnv("HOME")
		if !ok {
			return nil, fmt.Errorf("termcore: no known_hosts path given and $HOME is unset")
		}
		knownHostsPath = home + "/.ssh/known_hosts"
	}
	check, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("termcore: loading known_hosts: %w", err)
	}
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		if err := check(hostname, remote, key); err != nil {
			return fmt.Errorf("%w: %v", model.ErrHostKeyRejected, err)
		}
		return nil
	}, nil
}

func authMethod(a Auth) (ssh.AuthMethod, error) {
	switch a.Kind {
	case AuthPassword:
		return ssh.Password(a.Password), nil
	case AuthKey:
		keyBytes, err := os.ReadFile(a.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("termcore: reading private key: %w", err)
		}
		var signer ssh.Signer
		if a.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(a.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyBytes)
		}
		if err != nil {
			return nil, fmt.Errorf("termcore: parsing private key: %w", err)
		}
		return ssh.PublicKeys(signer), nil
	case AuthAgent:
		sock := a.AgentSock
		if sock == "" {
			sock = os.Getenv("SSH_AUTH_SOCK")
		}
		if sock == "" {
			return nil, fmt.Errorf("termcore: agent auth requested but SSH_AUTH_SOCK is unset")
		}
		conn, err := net.Dial("unix", sock)
		if err != nil {
			return nil, fmt.Errorf("termcore: dialing ssh-agent: %w", err)
		}
		return ssh.PublicKeysCallback(agent.NewClient(conn).Signers), nil
	default:
		return nil, fmt.Errorf("termcore: unknown auth kind %d", a.Kind)
	}
}

// Remote is the remote-shell Device variant: a channel opened with a
// pty-request over an authenticated SSH session. Session construction
// (NewRemote) is blocking and must be called from a worker context, not
// the UI thread.
type Remote struct {
	writeMu sync.Mutex // secure-transport libraries forbid concurrent frame emission

	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  io.Reader

	readerStarted bool
	closed        bool
	mu            sync.Mutex
}

// NewRemote dials host:port, authenticates as user, opens a session with
// a pty-req declaring TERM=xterm-256color, and starts the remote shell.
// Blocking: invoke from a worker goroutine, never the UI thread.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if cfg.HostKeyCallback == nil {
		return nil, fmt.Errorf("termcore: RemoteConfig.HostKeyCallback is required")
	}
	if !cfg.Size.Valid() {
		cfg.Size = model.TerminalSize{Rows: 24, Cols: 80}
	}

	method, err := authMethod(cfg.Auth)
	if err != nil {
		return nil, err
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	client, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{method},
		HostKeyCallback: cfg.HostKeyCallback,
		Timeout:         timeout,
	})
	if err != nil {
		return nil, model.NewDeviceIOError("dial", err)
	}

	session, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, model.NewDeviceIOError("open-session", err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("xterm-256color", int(cfg.Size.Rows), int(cfg.Size.Cols), modes); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, model.NewDeviceIOError("pty-req", err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, model.NewDeviceIOError("stdin-pipe", err)
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, model.NewDeviceIOError("stdout-pipe", err)
	}

	if err := session.Shell(); err != nil {
		_ = session.Close()
		_ = client.Close()
		return nil, model.NewDeviceIOError("shell", err)
	}

	return &Remote{
		client:  client,
		session: session,
		stdin:   stdin,
		stdout:  stdout,
	}, nil
}

func (r *Remote) Write(p []byte) (int, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return 0, model.ErrDeviceClosed
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	n, err := r.stdin.Write(p)
	if err != nil {
		return n, model.NewDeviceIOError("write", err)
	}
	return n, nil
}

// Resize issues an SSH window-change request for the new size.
func (r *Remote) Resize(size model.TerminalSize) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return model.ErrDeviceClosed
	}
	if !size.Valid() {
		return model.NewDeviceIOError("resize", os.ErrInvalid)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := r.session.WindowChange(int(size.Rows), int(size.Cols)); err != nil {
		return model.NewDeviceIOError("window-change", err)
	}
	return nil
}

func (r *Remote) StartReader() (<-chan []byte, error) {
	r.mu.Lock()
	if r.readerStarted {
		r.mu.Unlock()
		return nil, model.ErrAttachRejected
	}
	r.readerStarted = true
	stdout := r.stdout
	r.mu.Unlock()

	out := make(chan []byte, 4)
	go func() {
		defer close(out)
		buf := make([]byte, 16*1024)
		for {
			n, err := stdout.Read(buf)
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

func (r *Remote) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	_ = r.session.Close()
	err := r.client.Close()
	if err != nil {
		return model.NewDeviceIOError("close", err)
	}
	return nil
}

// ProcessID is unsupported for remote devices: the shell runs on the peer.
func (r *Remote) ProcessID() (uint32, bool) {
	return 0, false
}
