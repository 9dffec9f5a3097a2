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
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"termcore"
)

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "1", "true":
		return true
	default:
		return false
	}
}

func main() {
	remoteTarget := ""
	remoteUser := ""
	remotePort := 22
	shellPath := ""
	knownHosts := ""
	useAgent := false
	keyPath := ""
	verbose := false

	flag.StringVar(&remoteTarget, "host", "", "Remote SSH host to attach to (empty uses a local shell)")
	flag.StringVar(&remoteUser, "user", "", "Remote SSH user")
	flag.IntVar(&remotePort, "port", 22, "Remote SSH port")
	flag.StringVar(&shellPath, "shell", "", "Local shell to spawn (default: $SHELL)")
	flag.StringVar(&knownHosts, "known-hosts", "", "known_hosts path for remote host key verification (default: $HOME/.ssh/known_hosts)")
	flag.BoolVar(&useAgent, "agent", false, "Authenticate the remote host via ssh-agent")
	flag.StringVar(&keyPath, "identity", "", "Private key path for remote authentication")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if verbose || truthy(os.Getenv("TERMCORE_VERBOSE")) {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	inFd := int(os.Stdin.Fd())
	if !term.IsTerminal(inFd) {
		fmt.Fprintln(os.Stderr, "termcoreview: stdin is not a terminal")
		os.Exit(1)
	}
	oldState, err := term.MakeRaw(inFd)
	if err != nil {
		panic(err)
	}
	defer term.Restore(inFd, oldState)

	cols, rows, err := term.GetSize(inFd)
	if err != nil {
		cols, rows = 80, 24
	}
	size := termcore.TerminalSize{Rows: uint16(rows), Cols: uint16(cols)}

	facade := termcore.New(size, "termcoreview", log)
	defer facade.Shutdown()

	var dev termcore.Device
	if remoteTarget == "" {
		dev, err = termcore.NewLocal(termcore.LocalConfig{Size: size, ShellPath: shellPath})
		if err != nil {
			panic(err)
		}
	} else {
		auth := termcore.Auth{Kind: termcore.AuthPassword}
		if useAgent {
			auth = termcore.Auth{Kind: termcore.AuthAgent}
		} else if keyPath != "" {
			auth = termcore.Auth{Kind: termcore.AuthKey, KeyPath: keyPath}
		}
		hostKeyCallback, err := termcore.DefaultHostKeyCallback(knownHosts)
		if err != nil {
			panic(err)
		}
		dev, err = termcore.NewRemote(termcore.RemoteConfig{
			Host:            remoteTarget,
			Port:            remotePort,
			User:            remoteUser,
			Auth:            auth,
			Size:            size,
			HostKeyCallback: hostKeyCallback,
		})
		if err != nil {
			panic(err)
		}
	}
	facade.Attach(dev)

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			if c, r, err := term.GetSize(inFd); err == nil {
				facade.Resize(termcore.TerminalSize{Rows: uint16(r), Cols: uint16(c)})
			}
		}
	}()

	stdinDone := make(chan struct{})
	go func() {
		defer close(stdinDone)
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				_, _ = facade.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	render := func(snap termcore.Snapshot) {
		var b strings.Builder
		b.WriteString("\x1b[H")
		for r := 0; r < snap.Bounds.Rows; r++ {
			for _, c := range snap.Cells {
				if c.Line != r {
					continue
				}
				if c.Cell.Char == 0 {
					b.WriteByte(' ')
					continue
				}
				b.WriteRune(c.Cell.Char)
			}
			b.WriteString("\x1b[K\r\n")
		}
		os.Stdout.WriteString(b.String())
		os.Stdout.WriteString("\x1b[" + strconv.Itoa(snap.Cursor.Point.Line+1) + ";" + strconv.Itoa(snap.Cursor.Point.Column+1) + "H")
	}

	for {
		select {
		case <-facade.Wakeup():
			render(facade.CurrentSnapshot())
		case <-stdinDone:
			return
		}
	}
}
