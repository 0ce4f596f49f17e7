package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/circuit_breaker"
	"github.com/stretchr/testify/require"
)

var (
	errBroker = errors.New("broker down")
	ok        = func() error { return nil }
	fail      = func() error { return errBroker }
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func Test_circuitBreaker_Call(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var transitions []string
	cb := circuit_breaker.New(circuit_breaker.Settings{
		Window:        10,
		MinCalls:      4,
		FailureRatio:  0.5,
		OpenTimeout:   time.Minute,
		RecoveryCalls: 2,
		Clock:         clock.Now,
		OnStateChange: func(from, to circuit_breaker.Status, _ circuit_breaker.Counts) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	// below MinCalls the ratio is not evaluated
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(fail), errBroker)
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Equal(t, circuit_breaker.Counts{Calls: 3, Failures: 3}, cb.Counts())

	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.Open, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.False(t, called)
	require.Equal(t, 1, cb.Counts().Rejected)

	// a failed trial opens again
	clock.Advance(time.Minute)
	require.ErrorIs(t, cb.Call(fail), errBroker)
	require.Equal(t, circuit_breaker.Open, cb.State())

	clock.Advance(time.Minute)
	err = cb.Call(func() error {
		require.Equal(t, circuit_breaker.HalfOpen, cb.State())
		// only one trial at a time
		require.ErrorIs(t, cb.Call(ok), circuit_breaker.ErrOpenCB)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())

	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Equal(t, circuit_breaker.Counts{}, cb.Counts())

	require.Equal(t, []string{
		"closed->open",
		"open->half-open",
		"half-open->open",
		"open->half-open",
		"half-open->closed",
	}, transitions)
}

func Test_circuitBreaker_ClosedCountsRejected(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	var closedWith circuit_breaker.Counts
	cb := circuit_breaker.New(circuit_breaker.Settings{
		Window:        2,
		MinCalls:      1,
		FailureRatio:  1,
		OpenTimeout:   time.Second,
		RecoveryCalls: 1,
		Clock:         clock.Now,
		OnStateChange: func(_, to circuit_breaker.Status, c circuit_breaker.Counts) {
			if to == circuit_breaker.Closed {
				closedWith = c
			}
		},
	})

	require.Error(t, cb.Call(fail))
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(ok), circuit_breaker.ErrOpenCB)
	}
	clock.Advance(time.Second)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, 3, closedWith.Rejected)
}

func Test_circuitBreaker_Defaults(t *testing.T) {
	cb := circuit_breaker.New(circuit_breaker.Settings{})

	for i := 0; i < 4; i++ {
		require.Error(t, cb.Call(fail))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Open, cb.State())
}

func Test_circuitBreaker_Window(t *testing.T) {
	cb := circuit_breaker.New(circuit_breaker.Settings{Window: 4, MinCalls: 4, FailureRatio: 0.5})

	require.Error(t, cb.Call(fail))
	for i := 0; i < 4; i++ {
		require.NoError(t, cb.Call(ok))
	}
	// the early failure has left the window
	require.Equal(t, circuit_breaker.Counts{Calls: 4}, cb.Counts())
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Open, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	cb := circuit_breaker.New(circuit_breaker.Settings{Window: 2, MinCalls: 1, FailureRatio: 0.5, OpenTimeout: time.Hour})
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Open, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.Equal(t, circuit_breaker.Counts{}, cb.Counts())
	require.NoError(t, cb.Call(ok))
}
