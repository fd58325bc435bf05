package player

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeMPV answers JSON-IPC commands on a unix socket the way mpv does.
type fakeMPV struct {
	path     string
	ln       net.Listener
	mu       sync.Mutex
	conns    []net.Conn
	commands [][]any
	// reply decides data and error for a command; nil means success with no data.
	reply func(command []any) (any, string)
	// chatter is broadcast before every reply, as mpv does with events.
	chatter string
}

func newFakeMPV(t *testing.T) *fakeMPV {
	dir, err := os.MkdirTemp("", "mpv")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "ipc.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatal(err)
	}

	f := &fakeMPV{path: path, ln: ln}
	go f.accept()
	return f
}

func (f *fakeMPV) accept() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()
		go f.serve(conn)
	}
}

func (f *fakeMPV) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		reply, chatter := f.reply, f.chatter
		f.mu.Unlock()

		var data any
		status := "success"
		if reply != nil {
			var errText string
			data, errText = reply(cmd.Command)
			if errText != "" {
				status = errText
			}
		}

		if chatter != "" {
			_, _ = conn.Write([]byte(chatter + "\n"))
		}
		out, _ := json.Marshal(map[string]any{"request_id": cmd.RequestID, "error": status, "data": data})
		_, _ = conn.Write(append(out, '\n'))
	}
}

func (f *fakeMPV) respond(reply func(command []any) (any, string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reply = reply
}

func (f *fakeMPV) chat(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatter = line
}

// push writes a raw line to every open connection.
func (f *fakeMPV) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.conns {
		_, _ = conn.Write([]byte(line + "\n"))
	}
}

func (f *fakeMPV) received() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.commands...)
}

// waitFor blocks until n commands arrived, which also means their connection is tracked.
func (f *fakeMPV) waitFor(n int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(f.received()) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func (f *fakeMPV) dropConnections() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.conns {
		conn.Close()
	}
	f.conns = nil
}

func (f *fakeMPV) close() {
	f.ln.Close()
	f.dropConnections()
	_ = os.RemoveAll(filepath.Dir(f.path))
}

// attached returns an MPV talking to f without a child process.
func (f *fakeMPV) attached() *MPV {
	m := NewMPV(Options{})
	m.socketPath = f.path
	return m
}
