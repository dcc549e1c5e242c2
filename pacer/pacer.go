// Package pacer reconstructs the wall-clock cadence of a recorded ITCH feed.
// It owns no sockets and cannot itself fail (spec.md §4.3); any error comes
// from the sink a caller provides to Emit.
package pacer

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// Unpaced is the distinct speed value meaning "emit as fast as possible",
// resolving the speed_multiplier=0 open question (spec.md §6, §9) as an
// explicit mode rather than a silent divide-by-zero or an error. Ordinary
// speeds are positive finite floats; Unpaced is the only non-positive value
// New accepts.
const Unpaced float64 = 0

// sleepCap bounds any single cooperative sleep (spec.md §4.3): a gap in the
// feed must not stall the replay indefinitely.
const sleepCap = time.Second

// minSleep is the threshold below which the Pacer busy-loops instead of
// invoking the timer, because wake-up jitter would dominate a shorter sleep.
const minSleep = time.Microsecond

// ErrInvalidSpeed is returned by New for a non-positive, non-Unpaced,
// NaN, or infinite speed multiplier.
var ErrInvalidSpeed = errors.New("pacer: invalid speed multiplier")

// Config configures a Pacer.
type Config struct {
	// Speed is the playback speed multiplier. Use Unpaced for "as fast as
	// possible"; otherwise it must be a positive, finite value.
	Speed float64
}

// DefaultConfig plays a feed back at its original real-time cadence.
var DefaultConfig = Config{Speed: 1.0}

// Pacer schedules delivery of framed records at the wall-clock instant the
// original feed implies, scaled by a speed multiplier.
type Pacer struct {
	speed float64
	trace *Trace

	now   func() time.Time
	sleep func(time.Duration)

	haveAnchor bool
	wallAnchor time.Time
	feedAnchor uint64

	lastTimestamp uint64
}

// Option configures a Pacer at construction time.
type Option func(*Pacer)

// WithTrace attaches diagnostic hooks.
func WithTrace(t *Trace) Option {
	return func(p *Pacer) { p.trace = mergeTrace(t, NoOpTrace) }
}

// withClock overrides the time source, for deterministic tests.
func withClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(p *Pacer) {
		p.now = now
		p.sleep = sleep
	}
}

// New constructs a Pacer. speed must be Unpaced or a positive, finite value.
func New(cfg Config, opts ...Option) (*Pacer, error) {
	if cfg.Speed != Unpaced && (cfg.Speed <= 0 || math.IsNaN(cfg.Speed) || math.IsInf(cfg.Speed, 0)) {
		return nil, errors.Wrapf(ErrInvalidSpeed, "speed=%v", cfg.Speed)
	}
	p := &Pacer{
		speed: cfg.Speed,
		trace: NoOpTrace,
		now:   time.Now,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Emit schedules delivery of a record with embedded timestamp ts (valid
// only when hasTimestamp is true; otherwise the most recently observed
// timestamp is inherited, per spec.md §3 "Framed Message") and, once its
// egress deadline has arrived, invokes sink. It never reorders records: the
// caller is responsible for calling Emit once per record in feed order
// (spec.md I4).
func (p *Pacer) Emit(ts uint64, hasTimestamp bool, sink func() error) error {
	effective := ts
	if !hasTimestamp {
		effective = p.lastTimestamp
	}
	p.lastTimestamp = effective

	if p.speed != Unpaced {
		p.waitUntilDue(effective)
	}

	p.trace.Egress(effective)
	return sink()
}

func (p *Pacer) waitUntilDue(feedTimestamp uint64) {
	if !p.haveAnchor {
		p.wallAnchor = p.now()
		p.feedAnchor = feedTimestamp
		p.haveAnchor = true
		return
	}

	deltaFeed := feedDelta(p.feedAnchor, feedTimestamp)
	scaled := time.Duration(float64(deltaFeed) / p.speed)
	deadline := p.wallAnchor.Add(scaled)

	wait := deadline.Sub(p.now())
	if wait <= 0 {
		return
	}

	if wait > sleepCap {
		p.trace.CapHit(wait)
		p.trace.Sleep(sleepCap)
		p.sleep(sleepCap)
		p.wallAnchor = p.now()
		p.feedAnchor = feedTimestamp
		return
	}

	if wait < minSleep {
		for p.now().Before(deadline) {
		}
		return
	}

	p.trace.Sleep(wait)
	p.sleep(wait)
}

// feedDelta returns the signed elapsed feed-clock time from anchor to ts,
// both unsigned 48-bit nanosecond counts; ts earlier than anchor (e.g. after
// a cap-event reset straddling midnight rollover) yields a non-positive
// delta, which collapses waitUntilDue to an immediate emission.
func feedDelta(anchor, ts uint64) time.Duration {
	if ts >= anchor {
		return time.Duration(ts - anchor)
	}
	return -time.Duration(anchor - ts)
}
