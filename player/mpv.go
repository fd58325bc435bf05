package player

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/video-presenter/presenter/constant"
	"github.com/video-presenter/presenter/log"
	"github.com/video-presenter/presenter/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// Setting is a raw mpv option passed through from the command line.
type Setting struct {
	Key   string
	Value string
}

// ParseSetting splits "key=value". Without "=" the whole text is the key and the value is empty.
func ParseSetting(raw string) Setting {
	k, v, _ := strings.Cut(raw, "=")
	return Setting{Key: strings.TrimPrefix(strings.TrimSpace(k), "--"), Value: v}
}

func (s Setting) arg() string {
	if s.Value == "" {
		return "--" + s.Key
	}
	return fmt.Sprintf("--%s=%s", s.Key, s.Value)
}

// Options configures how mpv is launched.
type Options struct {
	Executable string
	Audio      bool
	Fullscreen bool
	Settings   []Setting
}

// MPV implements Engine by running mpv and talking to its JSON-IPC socket.
type MPV struct {
	options    Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv exits
	mu         sync.Mutex    // serializes socket commands
}

// NewMPV creates an MPV engine; nothing runs until Start.
func NewMPV(options Options) *MPV {
	if options.Executable == "" {
		options.Executable = "mpv"
	}
	return &MPV{
		options: options,
		exited:  make(chan struct{}),
	}
}

// Start launches mpv on video and waits for its IPC socket.
func (m *MPV) Start(video string) error {
	target, err := sanitizeMediaTarget(video)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Presenter, randomBytes))
	}

	args := buildArgs(m.options, m.socketPath, target)
	log.Debugf("starting %s %s", m.options.Executable, strings.Join(args, " "))

	m.cmd = exec.Command(m.options.Executable, args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on %s", m.socketPath)
	return nil
}

// buildArgs assembles the mpv command line. User settings come last so they win.
func buildArgs(options Options, socketPath, target string) []string {
	title := sanitizeTitle(fmt.Sprintf("%s - %s", constant.Presenter, filepath.Base(target)))

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		// hold the last frame after seeking to the end instead of closing
		"--keep-open=yes",
		"--hr-seek=yes",
		// held until the event listener is subscribed, see Resume
		"--pause",
	}

	if !options.Audio {
		args = append(args, "--no-audio")
	}
	if options.Fullscreen {
		args = append(args, "--fullscreen")
	}

	args = append(args, lo.Map(options.Settings, func(s Setting, _ int) string {
		return s.arg()
	})...)

	// "--" keeps a file name starting with "-" from being read as an option
	return append(args, "--", target)
}

// Wait returns a channel closed when mpv exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Pause suspends playback.
func (m *MPV) Pause() error {
	_, err := m.sendCommand("set_property", "pause", true)
	return err
}

// Resume starts playback.
func (m *MPV) Resume() error {
	_, err := m.sendCommand("set_property", "pause", false)
	return err
}

// TogglePause flips between paused and playing.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand("cycle", "pause")
	return err
}

// SeekAbsolute moves to seconds from the start of the media, frame exact.
func (m *MPV) SeekAbsolute(seconds float64) error {
	_, err := m.sendCommand("seek", seconds, "absolute+exact")
	return err
}

// SeekToEnd moves to the end of the media. With --keep-open the last frame stays up.
func (m *MPV) SeekToEnd() error {
	_, err := m.sendCommand("seek", 100, "absolute-percent+exact")
	return err
}

// GetProperty returns a decoded mpv property value.
func (m *MPV) GetProperty(name string) (any, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return nil, err
	}

	var value any
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("property %s: %w", name, err)
	}
	return value, nil
}

// GetFloat reads a numeric property.
func (m *MPV) GetFloat(name string) (float64, error) {
	value, err := m.GetProperty(name)
	if err != nil {
		return 0, err
	}
	return AsFloat(name, value)
}

// IsPaused reports whether mpv is paused.
func (m *MPV) IsPaused() (bool, error) {
	value, err := m.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, _ := value.(bool)
	return paused, nil
}

// IsRunning reports whether mpv is still alive.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand("get_property", "pid")
	return err == nil
}

// Close asks mpv to quit, kills it if it lingers and removes the socket.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	if m.cmd != nil {
		_, _ = m.sendCommand("quit")

		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// AsFloat converts a decoded property value into float64.
func AsFloat(name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("property %s: unavailable", name)
	default:
		return 0, fmt.Errorf("property %s: expected number, got %T", name, value)
	}
}

// sanitizeMediaTarget accepts local paths and http(s) URLs.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty media target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in media target")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
