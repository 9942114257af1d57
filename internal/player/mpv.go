// Package player owns the local mpv process and its JSON IPC socket.
// At most one process is bound to one file; each IPC exchange opens a
// fresh connection, so socket failures never affect liveness tracking.
package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os/exec"
	"time"
)

// ErrChannelUnavailable indicates the IPC socket could not be used.
// Callers treat query results as unknown; never fatal.
var ErrChannelUnavailable = errors.New("player control channel unavailable")

// MPV launches and controls an mpv process.
type MPV struct {
	binPath    string
	socketPath string
	timeout    time.Duration
	log        *slog.Logger

	cmd  *exec.Cmd
	done chan struct{} // closed when the current process exits
}

// New creates an mpv controller. socketPath is the IPC endpoint handed
// to mpv via --input-ipc-server.
func New(binPath, socketPath string, log *slog.Logger) *MPV {
	if log == nil {
		log = slog.Default()
	}
	return &MPV{
		binPath:    binPath,
		socketPath: socketPath,
		timeout:    2 * time.Second,
		log:        log.With("component", "player"),
	}
}

// Launch starts mpv bound to path with the fixed invocation profile:
// muted, no on-screen controls, no hardware decoding, nearest-neighbor
// scaling, a minimal 1x1 window forced visible. Returns an error when
// the process cannot start.
func (m *MPV) Launch(path string) error {
	cmd := exec.Command(m.binPath,
		"--input-ipc-server="+m.socketPath,
		"--mute=yes",
		"--osc=no",
		"--hwdec=no",
		"--scale=nearest",
		"--cscale=nearest",
		"--no-sub",
		"--geometry=1x1+0+0",
		"--force-window=yes",
		path,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch mpv: %w", err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	m.cmd = cmd
	m.done = done
	m.log.Info("player launched", "file", path, "pid", cmd.Process.Pid)
	return nil
}

// Stop requests graceful termination of the current process.
// Idempotent when nothing is running.
func (m *MPV) Stop() {
	if !m.IsAlive() {
		m.cmd = nil
		m.done = nil
		return
	}
	m.log.Info("stopping player", "pid", m.cmd.Process.Pid)
	if err := m.cmd.Process.Signal(terminateSignal); err != nil {
		m.log.Warn("terminate failed", "error", err)
	}
	m.cmd = nil
	m.done = nil
}

// IsAlive reports whether a process handle exists and has not exited.
// This is the sole source of truth for liveness, independent of socket
// health.
func (m *MPV) IsAlive() bool {
	if m.cmd == nil || m.done == nil {
		return false
	}
	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

func (m *MPV) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("unix", m.socketPath, m.timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	_ = conn.SetDeadline(time.Now().Add(m.timeout))
	return conn, nil
}

// SendCommand writes one newline-terminated command object and closes
// the connection. Fire-and-forget.
func (m *MPV) SendCommand(args ...any) error {
	conn, err := m.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	payload, err := json.Marshal(map[string]any{"command": args})
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("%w: write: %v", ErrChannelUnavailable, err)
	}
	return nil
}

// QueryProperty writes a get_property command, reads exactly one
// response object, and returns its numeric data field. A failure means
// "unknown" to the caller, never fatal.
func (m *MPV) QueryProperty(name string) (float64, error) {
	conn, err := m.dial()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	payload, err := json.Marshal(map[string]any{"command": []any{"get_property", name}})
	if err != nil {
		return 0, fmt.Errorf("marshal command: %w", err)
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return 0, fmt.Errorf("%w: write: %v", ErrChannelUnavailable, err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return 0, fmt.Errorf("%w: read: %v", ErrChannelUnavailable, err)
	}

	var reply struct {
		Data  json.Number `json:"data"`
		Error string      `json:"error"`
	}
	if err := json.Unmarshal(line, &reply); err != nil {
		return 0, fmt.Errorf("malformed response: %w", err)
	}
	if reply.Error != "" && reply.Error != "success" {
		return 0, fmt.Errorf("property %q: %s", name, reply.Error)
	}
	value, err := reply.Data.Float64()
	if err != nil {
		return 0, fmt.Errorf("property %q: non-numeric data %q", name, reply.Data)
	}
	return value, nil
}

// Position returns the player's current playback position in seconds.
func (m *MPV) Position() (float64, error) {
	return m.QueryProperty("time-pos")
}

// Seek issues an absolute seek.
func (m *MPV) Seek(seconds float64) error {
	return m.SendCommand("seek", int(seconds), "absolute")
}

// SetPaused sets the pause property.
func (m *MPV) SetPaused(paused bool) error {
	return m.SendCommand("set_property", "pause", paused)
}
