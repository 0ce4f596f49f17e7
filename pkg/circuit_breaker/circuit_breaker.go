package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type Status uint8

const (
	Closed Status = iota + 1
	Open
	HalfOpen
)

func (s Status) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var ErrOpenCB = errors.New("circuit breaker is open")

// Settings tune a breaker. Zero values fall back to the defaults below.
type Settings struct {
	// outcomes of the last Window calls decide whether to open
	Window int `yaml:"window" envconfig:"EVENTS_BREAKER_WINDOW" default:"20"`
	// the ratio is not evaluated before MinCalls outcomes are recorded
	MinCalls     int     `yaml:"minCalls" envconfig:"EVENTS_BREAKER_MIN_CALLS" default:"5"`
	FailureRatio float64 `yaml:"failureRatio" envconfig:"EVENTS_BREAKER_FAILURE_RATIO" default:"0.5"`
	// calls are rejected for OpenTimeout, then one trial call is let through
	OpenTimeout time.Duration `yaml:"openTimeout" envconfig:"EVENTS_BREAKER_OPEN_TIMEOUT" default:"30s"`
	// consecutive trial successes needed to close again
	RecoveryCalls int `yaml:"recoveryCalls" envconfig:"EVENTS_BREAKER_RECOVERY_CALLS" default:"2"`

	// OnStateChange runs outside the breaker lock after every transition.
	OnStateChange func(from, to Status, counts Counts) `yaml:"-" ignored:"true"`
	Clock         func() time.Time                      `yaml:"-" ignored:"true"`
}

// Counts describe the current window; Rejected accumulates until the breaker closes.
type Counts struct {
	Calls    int
	Failures int
	Rejected int
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() Status
	Counts() Counts
	Reset()
}

type transition struct {
	from, to Status
	counts   Counts
}

type circuitBreaker struct {
	mu       sync.Mutex
	settings Settings
	state    Status

	// ring of recent outcomes, true marks a failure
	outcomes []bool
	next     int
	filled   int

	openedAt  time.Time
	trial     bool
	successes int
	rejected  int
}

func New(s Settings) CircuitBreaker {
	if s.Window <= 0 {
		s.Window = 20
	}
	if s.MinCalls <= 0 {
		s.MinCalls = 5
	}
	if s.MinCalls > s.Window {
		s.MinCalls = s.Window
	}
	if s.FailureRatio <= 0 || s.FailureRatio > 1 {
		s.FailureRatio = 0.5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if s.RecoveryCalls <= 0 {
		s.RecoveryCalls = 2
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}
	return &circuitBreaker{
		settings: s,
		state:    Closed,
		outcomes: make([]bool, s.Window),
	}
}

// Call runs fn unless the breaker is open. While half-open only one trial
// call runs at a time; concurrent callers get ErrOpenCB.
func (cb *circuitBreaker) Call(fn func() error) error {
	if err := cb.before(); err != nil {
		return err
	}
	err := fn()
	cb.after(err != nil)
	return err
}

func (cb *circuitBreaker) before() error {
	cb.mu.Lock()
	var tr *transition
	switch cb.state {
	case Open:
		if cb.settings.Clock().Sub(cb.openedAt) < cb.settings.OpenTimeout {
			cb.rejected++
			cb.mu.Unlock()
			return ErrOpenCB
		}
		tr = cb.setState(HalfOpen)
		cb.trial = true
	case HalfOpen:
		if cb.trial {
			cb.rejected++
			cb.mu.Unlock()
			return ErrOpenCB
		}
		cb.trial = true
	}
	cb.mu.Unlock()
	cb.notify(tr)
	return nil
}

func (cb *circuitBreaker) after(failed bool) {
	cb.mu.Lock()
	var tr *transition
	switch cb.state {
	case HalfOpen:
		cb.trial = false
		if failed {
			tr = cb.setState(Open)
			break
		}
		cb.successes++
		if cb.successes >= cb.settings.RecoveryCalls {
			tr = cb.setState(Closed)
		}
	case Closed:
		cb.outcomes[cb.next] = failed
		cb.next = (cb.next + 1) % len(cb.outcomes)
		if cb.filled < len(cb.outcomes) {
			cb.filled++
		}
		if cb.filled >= cb.settings.MinCalls &&
			float64(cb.failures())/float64(cb.filled) >= cb.settings.FailureRatio {
			tr = cb.setState(Open)
		}
	}
	// an outcome arriving while Open belongs to a call admitted before the trip
	cb.mu.Unlock()
	cb.notify(tr)
}

// setState must be called with mu held.
func (cb *circuitBreaker) setState(to Status) *transition {
	if cb.state == to {
		return nil
	}
	tr := &transition{from: cb.state, to: to, counts: cb.counts()}
	cb.state = to
	cb.successes = 0
	switch to {
	case Open:
		cb.openedAt = cb.settings.Clock()
	case Closed:
		cb.clear()
	}
	return tr
}

func (cb *circuitBreaker) clear() {
	for i := range cb.outcomes {
		cb.outcomes[i] = false
	}
	cb.next, cb.filled = 0, 0
	cb.trial = false
	cb.rejected = 0
}

func (cb *circuitBreaker) failures() int {
	n := 0
	for i := 0; i < cb.filled; i++ {
		if cb.outcomes[i] {
			n++
		}
	}
	return n
}

func (cb *circuitBreaker) counts() Counts {
	return Counts{Calls: cb.filled, Failures: cb.failures(), Rejected: cb.rejected}
}

func (cb *circuitBreaker) notify(tr *transition) {
	if tr != nil && cb.settings.OnStateChange != nil {
		cb.settings.OnStateChange(tr.from, tr.to, tr.counts)
	}
}

func (cb *circuitBreaker) State() Status {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts()
}

// Reset closes the breaker and forgets the window.
func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	tr := cb.setState(Closed)
	cb.clear()
	cb.mu.Unlock()
	cb.notify(tr)
}
