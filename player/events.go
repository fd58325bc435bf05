package player

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/video-presenter/presenter/log"
)

const (
	// DefaultEventTimeout bounds each wait on the event socket.
	DefaultEventTimeout = 500 * time.Millisecond
	eventBuffer         = 64
	readBufSize         = 4096
)

// observed lists the mpv properties whose changes become events.
var observed = []string{"time-pos", "pause"}

// EventListener holds a persistent IPC connection and turns mpv's
// newline-delimited messages into Events.
type EventListener struct {
	socketPath string
	timeout    time.Duration
	conn       net.Conn
	events     chan Event
	stopCh     chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a listener for the given socket.
// Each read waits at most timeout before retrying.
func NewEventListener(socketPath string, timeout time.Duration) *EventListener {
	if timeout <= 0 {
		timeout = DefaultEventTimeout
	}
	return &EventListener{
		socketPath: socketPath,
		timeout:    timeout,
		events:     make(chan Event, eventBuffer),
		stopCh:     make(chan struct{}),
	}
}

// Events is closed once the listener stops, after a final Shutdown event
// when the connection was lost rather than stopped.
func (el *EventListener) Events() <-chan Event {
	return el.events
}

// Start connects, subscribes to the observed properties and starts the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// observe_property replies arrive on this connection and are skipped by the read loop
	for i, name := range observed {
		if err := writeCommand(conn, requestIDs.Add(1), []any{"observe_property", i + 1, name}); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop ends the read loop and closes the connection.
func (el *EventListener) Stop() {
	el.stopOnce.Do(func() {
		close(el.stopCh)

		el.mu.Lock()
		defer el.mu.Unlock()
		if el.conn != nil {
			el.conn.Close()
		}
	})
}

func (el *EventListener) stopped() bool {
	select {
	case <-el.stopCh:
		return true
	default:
		return false
	}
}

func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
		close(el.events)
	}()

	buf := make([]byte, readBufSize)
	var pending []byte

	for !el.stopped() {
		if err := el.conn.SetReadDeadline(time.Now().Add(el.timeout)); err != nil {
			el.lost(err)
			return
		}

		n, err := el.conn.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			line := pending[:i]
			pending = pending[i+1:]

			if event, ok := DecodeEvent(line); ok && !el.emit(event) {
				return
			}
		}

		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			el.lost(err)
			return
		}
	}
}

// lost reports a dropped connection as the end of the session.
func (el *EventListener) lost(err error) {
	if el.stopped() {
		return
	}
	if !errors.Is(err, io.EOF) {
		log.Warnf("event listener read error: %v", err)
	}
	el.emit(Event{Kind: Shutdown, Name: "connection-closed"})
}

func (el *EventListener) emit(event Event) bool {
	select {
	case el.events <- event:
		return true
	case <-el.stopCh:
		return false
	}
}

// DecodeEvent maps one mpv JSON line onto an Event.
// Command replies and unparsable lines yield false.
func DecodeEvent(line []byte) (Event, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Event{}, false
	}

	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil || msg.Event == "" {
		return Event{}, false
	}

	switch msg.Event {
	case "file-loaded":
		return Event{Kind: FileLoaded, Name: msg.Event}, true
	case "playback-restart":
		// sent once a seek has settled, so time-pos is the landed position
		return Event{Kind: Seek, Name: msg.Event}, true
	case "shutdown", "end-file":
		// with --keep-open, end-file only fires when playback is stopped for good
		return Event{Kind: Shutdown, Name: msg.Event}, true
	case "property-change":
		if msg.Name == "time-pos" {
			var pos *float64
			if err := json.Unmarshal(msg.Data, &pos); err == nil && pos != nil {
				return Event{Kind: PositionChanged, Name: msg.Name, Position: *pos}, true
			}
		}
		var value any
		_ = json.Unmarshal(msg.Data, &value)
		return Event{Kind: Other, Name: msg.Name, Value: value}, true
	default:
		return Event{Kind: Other, Name: msg.Event}, true
	}
}
