package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gorilla/websocket"
)

// controlMsg is a JSON text frame from the browser. Anything else the
// browser sends is keyboard or mouse input for the terminal.
type controlMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

// parseResize reports the size carried by a resize control frame.
func parseResize(data []byte) (cols, rows uint16, ok bool) {
	if len(data) == 0 || data[0] != '{' {
		return 0, 0, false
	}
	var m controlMsg
	if err := json.Unmarshal(data, &m); err != nil {
		return 0, 0, false
	}
	if !strings.EqualFold(strings.TrimSpace(m.Type), "resize") {
		return 0, 0, false
	}
	if m.Cols <= 0 || m.Rows <= 0 || m.Cols > 0xffff || m.Rows > 0xffff {
		return 0, 0, false
	}
	return uint16(m.Cols), uint16(m.Rows), true
}

// sameOrigin accepts requests without an Origin header and those whose
// Origin names the host they were sent to.
func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	host := strings.TrimSpace(r.Host)
	return strings.HasSuffix(origin, "://"+host)
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     sameOrigin,
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	ptmx, cleanup, err := s.startSession()
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start board: "+err.Error()))
		return
	}
	defer cleanup()

	var wg sync.WaitGroup
	done := make(chan struct{}, 2)
	pump := func(f func() error) {
		defer wg.Done()
		_ = f()
		done <- struct{}{}
	}
	wg.Add(2)
	go pump(func() error { return copyToSocket(ctx, ptmx, conn) })
	go pump(func() error { return copyFromSocket(ctx, conn, ptmx) })

	select {
	case <-ctx.Done():
	case <-done:
	}
	cancel()
	// Unblock both pumps: the pty read ends when the child is gone, the
	// socket read when the connection closes.
	cleanup()
	_ = conn.Close()
	wg.Wait()
}

// sessionCommand is the board TUI as a child process.
func (s *Server) sessionCommand() (*exec.Cmd, error) {
	exe := strings.TrimSpace(s.cfg.Exe)
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return nil, err
		}
	}
	// No subcommand => interactive TUI.
	cmd := exec.Command(exe, "--dir", s.cfg.Dir)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)
	return cmd, nil
}

func (s *Server) startSession() (*os.File, func(), error) {
	cmd, err := s.sessionCommand()
	if err != nil {
		return nil, nil, err
	}
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			_ = ptmx.Close()
			_ = cmd.Process.Kill()
			_, _ = cmd.Process.Wait()
		})
	}
	return ptmx, cleanup, nil
}

func copyToSocket(ctx context.Context, ptmx *os.File, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for ctx.Err() == nil {
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return ctx.Err()
}

func copyFromSocket(ctx context.Context, conn *websocket.Conn, ptmx *os.File) error {
	for ctx.Err() == nil {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt == websocket.TextMessage {
			if cols, rows, ok := parseResize(data); ok {
				_ = pty.Setsize(ptmx, &pty.Winsize{Cols: cols, Rows: rows})
				continue
			}
		}
		if len(data) == 0 {
			continue
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
	return ctx.Err()
}
