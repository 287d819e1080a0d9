// Package circuitbreaker 熔断器
//
// 状态机：
//
//	CLOSED --ReadyToTrip--> OPEN --Timeout--> HALF_OPEN
//	HALF_OPEN --连续成功MaxRequests次--> CLOSED
//	HALF_OPEN --任意失败--> OPEN
//
// 用于保护对外部依赖（RabbitMQ）的调用：Broker不可用时快速失败，
// 不让每个下单请求都等待一次连接超时。
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开（或半开状态探测名额已满）时返回
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	MaxRequests uint32                   // 半开状态允许的探测请求数，0按1处理
	Interval    time.Duration            // CLOSED状态统计窗口，0表示不按窗口清零
	Timeout     time.Duration            // OPEN持续时间，0按60秒处理
	ReadyToTrip func(counts Counts) bool // nil时连续失败5次熔断
}

// DefaultConfig 连续失败threshold次熔断
func DefaultConfig(threshold uint32, timeout time.Duration) Config {
	return Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	}
}

// Counts 当前统计窗口内的请求计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) success() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) failure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// StateChangeFunc 状态变化回调（持锁调用，不要在回调里访问熔断器）
type StateChangeFunc func(name string, from, to State)

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name        string
	maxRequests uint32
	interval    time.Duration
	timeout     time.Duration
	readyToTrip func(counts Counts) bool
	now         func() time.Time

	mu            sync.Mutex
	state         State
	generation    uint64 // 每次状态切换递增，丢弃跨代的请求结果
	counts        Counts
	expiry        time.Time
	onStateChange StateChangeFunc
}

// NewCircuitBreaker 创建熔断器
func NewCircuitBreaker(name string, cfg Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:        name,
		maxRequests: cfg.MaxRequests,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		readyToTrip: cfg.ReadyToTrip,
		now:         time.Now,
	}
	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.timeout <= 0 {
		cb.timeout = 60 * time.Second
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = func(counts Counts) bool { return counts.ConsecutiveFailures >= 5 }
	}
	cb.resetWindow(cb.now())
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// SetStateChangeCallback 注册状态变化回调
func (cb *CircuitBreaker) SetStateChangeCallback(fn StateChangeFunc) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Execute 在熔断器保护下执行req
// 熔断时直接返回ErrOpenState，req不会被调用
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			cb.afterRequest(generation, false)
			panic(r)
		}
	}()

	err = req()
	cb.afterRequest(generation, err == nil)
	return err
}

// State 当前状态（会推进到期的OPEN→HALF_OPEN）
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.success()
		if state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.maxRequests {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.failure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.resetWindow(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) resetWindow(now time.Time) {
	cb.counts = Counts{}
	cb.expiry = time.Time{}
	if cb.interval > 0 {
		cb.expiry = now.Add(cb.interval)
	}
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++

	switch state {
	case StateClosed:
		cb.resetWindow(now)
	case StateOpen:
		cb.counts = Counts{}
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.counts = Counts{}
		cb.expiry = time.Time{}
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}
