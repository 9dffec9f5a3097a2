package device

import (
	"crypto/ed25519"
	"crypto/rand"
	"net"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"

	"termcore/internal/model"
)

// loopbackShellServer accepts a single SSH connection on a loopback
// listener and records the pty-req and window-change requests a
// session channel receives, decoding their wire payloads with the
// same parsers Remote's peer would use.
type loopbackShellServer struct {
	listener net.Listener
	signer   ssh.Signer

	mu           sync.Mutex
	ptyReq       *ptyRequest
	windowChange *windowChangeRequest
}

func newLoopbackShellServer(t *testing.T) *loopbackShellServer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating host key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("signer from key: %v", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return &loopbackShellServer{listener: ln, signer: signer}
}

func (s *loopbackShellServer) addr() (string, int) {
	tcpAddr := s.listener.Addr().(*net.TCPAddr)
	return tcpAddr.IP.String(), tcpAddr.Port
}

func (s *loopbackShellServer) serveOne(t *testing.T) {
	conn, err := s.listener.Accept()
	if err != nil {
		return
	}
	config := &ssh.ServerConfig{NoClientAuth: true}
	config.AddHostKey(s.signer)

	sconn, chans, globalReqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		t.Logf("server handshake: %v", err)
		return
	}
	defer sconn.Close()
	go ssh.DiscardRequests(globalReqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			_ = newCh.Reject(ssh.UnknownChannelType, "unsupported")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			return
		}
		go s.handleSession(ch, requests)
	}
}

func (s *loopbackShellServer) handleSession(ch ssh.Channel, requests <-chan *ssh.Request) {
	defer ch.Close()
	for req := range requests {
		switch req.Type {
		case "pty-req":
			parsed, err := parsePtyRequest(req.Payload)
			if err == nil {
				s.mu.Lock()
				s.ptyReq = parsed
				s.mu.Unlock()
			}
			if req.WantReply {
				_ = req.Reply(true, nil)
			}
		case "window-change":
			parsed, err := parseWindowChangeRequest(req.Payload)
			if err == nil {
				s.mu.Lock()
				s.windowChange = parsed
				s.mu.Unlock()
			}
			if req.WantReply {
				_ = req.Reply(true, nil)
			}
		case "shell":
			if req.WantReply {
				_ = req.Reply(true, nil)
			}
		default:
			if req.WantReply {
				_ = req.Reply(false, nil)
			}
		}
	}
}

func (s *loopbackShellServer) snapshot() (*ptyRequest, *windowChangeRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ptyReq, s.windowChange
}

func TestRemoteSendsWellFormedPtyAndWindowChangeRequests(t *testing.T) {
	srv := newLoopbackShellServer(t)
	defer srv.listener.Close()
	go srv.serveOne(t)

	host, port := srv.addr()
	dev, err := NewRemote(RemoteConfig{
		Host:            host,
		Port:            port,
		User:            "tester",
		Auth:            Auth{Kind: AuthPassword, Password: "unused"},
		Size:            model.TerminalSize{Rows: 24, Cols: 80},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		ConnectTimeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewRemote: %v", err)
	}
	defer dev.Close()

	deadline := time.Now().Add(2 * time.Second)
	var pty *ptyRequest
	for time.Now().Before(deadline) {
		pty, _ = srv.snapshot()
		if pty != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if pty == nil {
		t.Fatal("server never received a pty-req")
	}
	if pty.Width != 80 || pty.Height != 24 {
		t.Fatalf("expected 80x24, got %dx%d", pty.Width, pty.Height)
	}

	if err := dev.Resize(model.TerminalSize{Rows: 40, Cols: 120}); err != nil {
		t.Fatalf("Resize: %v", err)
	}

	deadline = time.Now().Add(2 * time.Second)
	var wc *windowChangeRequest
	for time.Now().Before(deadline) {
		_, wc = srv.snapshot()
		if wc != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if wc == nil {
		t.Fatal("server never received a window-change request")
	}
	if wc.Width != 120 || wc.Height != 40 {
		t.Fatalf("expected 120x40, got %dx%d", wc.Width, wc.Height)
	}
}
