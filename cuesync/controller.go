// Package cuesync keeps the player in step with a cue table.
//
// A Controller tracks which cue the playhead has reached. Position reports
// that cross into a later cue pause playback; Advance and Retreat seek
// between cues. The index is shared between the event goroutine and the
// input goroutine through atomics, no locks involved.
package cuesync

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/video-presenter/presenter/cue"
	"github.com/video-presenter/presenter/log"
	"github.com/video-presenter/presenter/player"
	"github.com/video-presenter/presenter/timecode"
)

// DefaultFrameRate is used until the engine reports the media frame rate.
const DefaultFrameRate = 60.0

// frame rate properties in order of preference
var frameRateProperties = []string{"container-fps", "estimated-vf-fps"}

// Controller is the cue state machine. Index ranges over [0, Len()+1].
type Controller struct {
	table  *cue.Table
	engine player.Engine

	index    atomic.Int64
	fps      atomic.Uint64 // math.Float64bits, 0 until known
	fallback float64

	onChange func(index int)
}

// Option configures a Controller.
type Option func(*Controller)

// WithFallbackFPS sets the frame rate assumed before the media reports one.
// Non-positive values are ignored.
func WithFallbackFPS(fps float64) Option {
	return func(c *Controller) {
		if fps > 0 && !math.IsNaN(fps) && !math.IsInf(fps, 0) {
			c.fallback = fps
		}
	}
}

// WithOnChange registers fn to run after every index store.
func WithOnChange(fn func(index int)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// New returns a controller positioned before the first cue.
func New(table *cue.Table, engine player.Engine, opts ...Option) *Controller {
	c := &Controller{
		table:    table,
		engine:   engine,
		fallback: DefaultFrameRate,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Status is a point-in-time view of a Controller.
type Status struct {
	Index     int
	Len       int
	FrameRate float64
	// Current is the timecode of the cue at Index, Next the one after it.
	Current timecode.Timecode
	Next    timecode.Timecode
}

// Status returns a snapshot of the controller.
func (c *Controller) Status() Status {
	index := c.CurrentIndex()
	return Status{
		Index:     index,
		Len:       c.Len(),
		FrameRate: c.FrameRate(),
		Current:   c.table.At(index),
		Next:      c.table.At(index + 1),
	}
}

// CurrentIndex returns the cue the playhead has reached.
func (c *Controller) CurrentIndex() int {
	return int(c.index.Load())
}

// Len is the number of cues in the table.
func (c *Controller) Len() int {
	return c.table.Len()
}

// FrameRate returns the reported frame rate, or the fallback before one was reported.
func (c *Controller) FrameRate() float64 {
	if bits := c.fps.Load(); bits != 0 {
		return math.Float64frombits(bits)
	}

	return c.fallback
}

func (c *Controller) store(index int) {
	c.index.Store(int64(index))
	if c.onChange != nil {
		c.onChange(index)
	}
}

// OnPositionReport handles a periodic playhead report.
// Crossing into a later cue pauses playback once; moving back only re-anchors the index.
// Playing on from exactly the last cue into the tail of the media does not pause again.
func (c *Controller) OnPositionReport(seconds float64) error {
	located := c.table.Locate(seconds, c.FrameRate())
	current := c.CurrentIndex()
	tail := current == c.Len() && located == c.Len()+1

	if located > current && !tail {
		if err := c.engine.Pause(); err != nil {
			return fmt.Errorf("pause at cue %d: %w", located, err)
		}
		log.Infof("reached cue %d at %.3fs, paused", located, seconds)
	}

	if located != current {
		c.store(located)
	}

	return nil
}

// OnExternalSeek re-anchors the index after a seek. It never pauses.
func (c *Controller) OnExternalSeek(seconds float64) error {
	located := c.table.Locate(seconds, c.FrameRate())
	log.Debugf("seek to %.3fs, cue %d", seconds, located)
	c.store(located)
	return nil
}

// OnMediaLoaded records the frame rate of newly loaded media.
// Later calls overwrite earlier ones; non-positive or NaN rates are ignored.
func (c *Controller) OnMediaLoaded(fps float64) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		log.Warnf("ignoring frame rate %v, keeping %v", fps, c.FrameRate())
		return
	}

	c.fps.Store(math.Float64bits(fps))
	log.Infof("frame rate %v", fps)
}

// Advance seeks to the next cue, or to the end of the media after the last one.
// It does nothing once the end has been reached.
func (c *Controller) Advance() error {
	target := c.CurrentIndex() + 1
	if target > c.Len()+1 {
		return nil
	}

	at := c.table.At(target)
	if at.IsEnd() {
		if err := c.engine.SeekToEnd(); err != nil {
			return fmt.Errorf("seek to end: %w", err)
		}
		c.store(c.Len() + 1)
		return nil
	}

	if err := c.engine.SeekAbsolute(at.ToSeconds(c.FrameRate())); err != nil {
		return fmt.Errorf("seek to cue %d (%s): %w", target, at, err)
	}
	c.store(target)
	return nil
}

// Retreat seeks to the previous cue, or to the start of the media from the first one.
func (c *Controller) Retreat() error {
	target := max(0, c.CurrentIndex()-1)

	at := c.table.At(target)
	if err := c.engine.SeekAbsolute(at.ToSeconds(c.FrameRate())); err != nil {
		return fmt.Errorf("seek to cue %d (%s): %w", target, at, err)
	}
	c.store(target)
	return nil
}

// Prime reads the frame rate and playhead of media that was loaded before
// anyone was listening for engine events. The frame rate error is returned;
// a missing playhead only leaves the index where it is.
func (c *Controller) Prime() error {
	fps, err := c.mediaFrameRate()
	if err != nil {
		return err
	}
	c.OnMediaLoaded(fps)

	if value, err := c.engine.GetProperty("time-pos"); err == nil {
		if seconds, err := player.AsFloat("time-pos", value); err == nil {
			return c.OnExternalSeek(seconds)
		}
	}

	return nil
}

// Run feeds engine events into the controller until Shutdown, channel close or ctx cancellation.
// Failures of individual events are logged and do not stop the loop.
func (c *Controller) Run(ctx context.Context, events <-chan player.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			if event.Kind == player.Shutdown {
				log.Info("player shut down")
				return nil
			}

			if err := c.handle(event); err != nil {
				log.Errorf("%s: %v", event.Kind, err)
			}
		}
	}
}

func (c *Controller) handle(event player.Event) error {
	switch event.Kind {
	case player.FileLoaded:
		fps, err := c.mediaFrameRate()
		if err != nil {
			return err
		}
		c.OnMediaLoaded(fps)
		return nil
	case player.Seek:
		value, err := c.engine.GetProperty("time-pos")
		if err != nil {
			return err
		}
		seconds, err := player.AsFloat("time-pos", value)
		if err != nil {
			return err
		}
		return c.OnExternalSeek(seconds)
	case player.PositionChanged:
		return c.OnPositionReport(event.Position)
	default:
		return nil
	}
}

func (c *Controller) mediaFrameRate() (float64, error) {
	var lastErr error
	for _, name := range frameRateProperties {
		value, err := c.engine.GetProperty(name)
		if err != nil {
			lastErr = err
			continue
		}

		fps, err := player.AsFloat(name, value)
		if err != nil {
			lastErr = err
			continue
		}

		return fps, nil
	}

	return 0, fmt.Errorf("frame rate: %w", lastErr)
}
