package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker unavailable")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("order-events", cfg)
	cb.now = clock.now
	cb.resetWindow(clock.now())
	return cb, clock
}

func fail() error    { return errBroker }
func succeed() error { return nil }

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig(5, 30*time.Second))

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 10, cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_OpenState(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig(5, 30*time.Second))

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errBroker)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断时不应调用req")
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig(3, 30*time.Second))

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.NoError(t, cb.Execute(succeed))
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 2, cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpenToClosed(t *testing.T) {
	cb, clock := newTestBreaker(DefaultConfig(2, 10*time.Second))

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clock.advance(11 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenToOpen(t *testing.T) {
	cb, clock := newTestBreaker(DefaultConfig(2, 10*time.Second))

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.advance(11 * time.Second)
	require.Equal(t, StateHalfOpen, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errBroker)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cfg := DefaultConfig(1, 10*time.Second)
	cfg.MaxRequests = 1
	cb, clock := newTestBreaker(cfg)

	_ = cb.Execute(fail)
	clock.advance(11 * time.Second)

	// 第一个探测请求执行期间，第二个请求被拒绝
	err := cb.Execute(func() error {
		assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		Interval: 10 * time.Second,
		Timeout:  time.Minute,
		ReadyToTrip: func(c Counts) bool {
			return c.TotalFailures >= 3
		},
	})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	clock.advance(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.EqualValues(t, 1, cb.Counts().TotalFailures)
}

func TestCircuitBreaker_FailureRate(t *testing.T) {
	cb, _ := newTestBreaker(Config{
		Timeout: time.Minute,
		ReadyToTrip: func(c Counts) bool {
			return c.Requests >= 10 && c.FailureRate() >= 0.5
		},
	})

	for i := 0; i < 9; i++ {
		if i%2 == 0 {
			_ = cb.Execute(fail)
		} else {
			_ = cb.Execute(succeed)
		}
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.InDelta(t, 5.0/9.0, cb.Counts().FailureRate(), 0.001)

	_ = cb.Execute(fail)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb, clock := newTestBreaker(DefaultConfig(1, 10*time.Second))

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		assert.Equal(t, "order-events", name)
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	_ = cb.Execute(fail)
	clock.advance(11 * time.Second)
	_ = cb.Execute(succeed)

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_PanicCountsAsFailure(t *testing.T) {
	cb, _ := newTestBreaker(DefaultConfig(1, 10*time.Second))

	assert.Panics(t, func() {
		_ = cb.Execute(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
