package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"autoborder/internal/catalog"
	"autoborder/internal/editor"
	"autoborder/internal/render"
)

// SSHServer wraps the SSH listener and edit loop integration.
type SSHServer struct {
	loop    *editor.Loop
	cat     *catalog.Catalog
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, loop *editor.Loop, cat *catalog.Catalog) *SSHServer {
	return &SSHServer{
		loop:    loop,
		cat:     cat,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	sessionID, renderCh := s.loop.AddSession(username)
	defer s.loop.RemoveSession(sessionID)

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(s.cat, termW, termH)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	editCh := s.loop.EditChan()
	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, ev := range parseInput(buf[:n]) {
				if ev.Action == editor.ActionQuit {
					close(quitCh)
					return
				}
				ev.SessionID = sessionID
				select {
				case editCh <- ev:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	// Main render loop: read from render channel
	for {
		select {
		case <-quitCh:
			return
		case state, ok := <-renderCh:
			if !ok {
				return
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			output := engine.Render(sessionID, state.Map, Cursors(state.Sessions), w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// Cursors converts session snapshots to render cursor info.
func Cursors(sessions []editor.SessionSnapshot) []render.CursorInfo {
	out := make([]render.CursorInfo, len(sessions))
	for i, s := range sessions {
		out[i] = render.CursorInfo{
			ID:    s.ID,
			Name:  s.Name,
			X:     s.X,
			Y:     s.Y,
			Color: s.Color,
			Brush: s.Brush.Key,
		}
	}
	return out
}

// parseInput converts raw bytes into edits without a session id.
// Handles WASD, arrow key escape sequences, palette digits, the paint
// keys, Q and Ctrl-C.
func parseInput(data []byte) []editor.Edit {
	var edits []editor.Edit
	add := func(a editor.Action) {
		edits = append(edits, editor.Edit{Action: a})
	}
	i := 0
	for i < len(data) {
		// Check for escape sequences (arrow keys)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				add(editor.ActionUp)
			case 'B':
				add(editor.ActionDown)
			case 'C':
				add(editor.ActionRight)
			case 'D':
				add(editor.ActionLeft)
			}
			i += 3
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'w', 'W':
			add(editor.ActionUp)
		case 's', 'S':
			add(editor.ActionDown)
		case 'a', 'A':
			add(editor.ActionLeft)
		case 'd', 'D':
			add(editor.ActionRight)
		case ' ':
			add(editor.ActionPaint)
		case 'x', 'X':
			add(editor.ActionErase)
		case 'o', 'O':
			add(editor.ActionToggleOptional)
		case 'r', 'R':
			add(editor.ActionRefresh)
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			edits = append(edits, editor.Edit{Action: editor.ActionSelect, Key: r})
		case 'q', 'Q':
			add(editor.ActionQuit)
		case 3: // Ctrl-C
			add(editor.ActionQuit)
		}
		i += size
	}
	return edits
}
