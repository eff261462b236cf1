// Package timer menyediakan timer triase dengan ambang peringatan dan kritis.
//
// Timer dimiliki oleh satu kunjungan IGD. Elapsed bertambah satu setiap detik
// selama berjalan; OnWarning dan OnCritical masing-masing dipanggil sekali
// sampai Reset.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

type RunState string

const (
	Idle    RunState = "idle"
	Running RunState = "running"
	Paused  RunState = "paused"
)

type AlertState string

const (
	Normal   AlertState = "normal"
	Warning  AlertState = "warning"
	Critical AlertState = "critical"
)

const (
	DefaultWarningThreshold  = 90 * time.Second
	DefaultCriticalThreshold = 120 * time.Second
)

var ErrInvalidThresholds = errors.New("ambang batas timer tidak valid")

// Config berisi ambang timer. Nilai nol diganti dengan default.
type Config struct {
	WarningThreshold  time.Duration
	CriticalThreshold time.Duration
}

func (c Config) withDefaults() Config {
	if c.WarningThreshold == 0 {
		c.WarningThreshold = DefaultWarningThreshold
	}
	if c.CriticalThreshold == 0 {
		c.CriticalThreshold = DefaultCriticalThreshold
	}
	return c
}

// Validate memastikan kedua ambang minimal satu detik dan critical >= warning.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.WarningThreshold < time.Second || c.CriticalThreshold < time.Second {
		return fmt.Errorf("%w: ambang minimal 1 detik", ErrInvalidThresholds)
	}
	if c.CriticalThreshold < c.WarningThreshold {
		return fmt.Errorf("%w: critical (%s) lebih kecil dari warning (%s)",
			ErrInvalidThresholds, c.CriticalThreshold, c.WarningThreshold)
	}
	return nil
}

// Snapshot adalah keadaan timer pada satu waktu.
type Snapshot struct {
	ElapsedSeconds           int        `json:"elapsed_seconds"`
	RunState                 RunState   `json:"run_state"`
	AlertState               AlertState `json:"alert_state"`
	WarningThresholdSeconds  int        `json:"warning_threshold_seconds"`
	CriticalThresholdSeconds int        `json:"critical_threshold_seconds"`
}

// Hooks dipanggil di luar lock timer, sehingga boleh memanggil method timer.
type Hooks struct {
	OnStart    func(Snapshot)
	OnPause    func(Snapshot)
	OnReset    func(Snapshot)
	OnWarning  func(Snapshot)
	OnCritical func(Snapshot)
}

// Ticker adalah sumber tick satu detik.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc membuat Ticker baru setiap kali timer mulai berjalan.
type TickerFunc func() Ticker

type secondTicker struct {
	t *time.Ticker
}

func (s *secondTicker) C() <-chan time.Time { return s.t.C }
func (s *secondTicker) Stop()               { s.t.Stop() }

// NewSecondTicker mengembalikan Ticker berbasis time.Ticker satu detik.
func NewSecondTicker() Ticker {
	return &secondTicker{t: time.NewTicker(time.Second)}
}

type Option func(*Timer)

func WithHooks(h Hooks) Option {
	return func(t *Timer) { t.hooks = h }
}

// WithTicker mengganti sumber tick. nil berarti timer hanya maju lewat Tick.
func WithTicker(f TickerFunc) Option {
	return func(t *Timer) { t.newTicker = f }
}

type Timer struct {
	mu sync.Mutex

	warningSeconds  int
	criticalSeconds int

	elapsed       int
	state         RunState
	warningFired  bool
	criticalFired bool
	closed        bool

	hooks     Hooks
	newTicker TickerFunc

	// gen berubah setiap kali loop tick dihentikan; tick dari loop lama diabaikan.
	gen  uint64
	stop chan struct{}
}

// New membuat timer dalam keadaan idle.
func New(cfg Config, opts ...Option) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	t := &Timer{
		warningSeconds:  int(cfg.WarningThreshold / time.Second),
		criticalSeconds: int(cfg.CriticalThreshold / time.Second),
		state:           Idle,
		newTicker:       NewSecondTicker,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Start menjalankan timer dari idle atau paused. Tidak berefek bila sudah berjalan.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.closed || t.state == Running {
		t.mu.Unlock()
		return
	}
	t.state = Running
	t.startLoopLocked()
	snap := t.snapshotLocked()
	hook := t.hooks.OnStart
	t.mu.Unlock()

	call(hook, snap)
}

// Pause menghentikan timer tanpa mengubah elapsed. Hanya berlaku saat berjalan.
func (t *Timer) Pause() {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return
	}
	t.state = Paused
	t.stopLoopLocked()
	snap := t.snapshotLocked()
	hook := t.hooks.OnPause
	t.mu.Unlock()

	call(hook, snap)
}

// Reset mengembalikan timer ke idle dengan elapsed 0 dan mempersenjatai ulang
// OnWarning dan OnCritical.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.stopLoopLocked()
	t.elapsed = 0
	t.state = Idle
	t.warningFired = false
	t.criticalFired = false
	snap := t.snapshotLocked()
	hook := t.hooks.OnReset
	t.mu.Unlock()

	call(hook, snap)
}

// Close menghentikan loop tick. Start setelah Close tidak berefek.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLoopLocked()
	if t.state == Running {
		t.state = Paused
	}
	t.closed = true
}

// Tick memajukan timer satu detik bila sedang berjalan.
func (t *Timer) Tick() {
	t.mu.Lock()
	t.advanceLocked()
}

func (t *Timer) tickFromLoop(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.advanceLocked()
}

// advanceLocked dipanggil dengan lock terpegang dan melepasnya sebelum hook.
func (t *Timer) advanceLocked() {
	if t.state != Running {
		t.mu.Unlock()
		return
	}
	t.elapsed++

	var fire []func(Snapshot)
	if !t.warningFired && t.elapsed >= t.warningSeconds {
		t.warningFired = true
		fire = append(fire, t.hooks.OnWarning)
	}
	if !t.criticalFired && t.elapsed >= t.criticalSeconds {
		t.criticalFired = true
		fire = append(fire, t.hooks.OnCritical)
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	for _, hook := range fire {
		call(hook, snap)
	}
}

func (t *Timer) startLoopLocked() {
	if t.newTicker == nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	go t.loop(t.newTicker(), stop, t.gen)
}

func (t *Timer) stopLoopLocked() {
	t.gen++
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) loop(ticker Ticker, stop <-chan struct{}, gen uint64) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			t.tickFromLoop(gen)
		}
	}
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *Timer) RunState() RunState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Timer) AlertState() AlertState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return alertFor(t.elapsed, t.warningSeconds, t.criticalSeconds)
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		ElapsedSeconds:           t.elapsed,
		RunState:                 t.state,
		AlertState:               alertFor(t.elapsed, t.warningSeconds, t.criticalSeconds),
		WarningThresholdSeconds:  t.warningSeconds,
		CriticalThresholdSeconds: t.criticalSeconds,
	}
}

func alertFor(elapsed, warning, critical int) AlertState {
	switch {
	case elapsed >= critical:
		return Critical
	case elapsed >= warning:
		return Warning
	default:
		return Normal
	}
}

func call(hook func(Snapshot), snap Snapshot) {
	if hook != nil {
		hook(snap)
	}
}
