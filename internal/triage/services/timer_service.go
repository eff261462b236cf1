package services

import (
	"errors"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/triage/timer"
)

var ErrTimerNotFound = errors.New("timer triase tidak ditemukan")

const systemActor = "sistem"

// Publisher menyiarkan event ke layar IGD, biasanya *ws.Hub.
type Publisher interface {
	Publish(msgType string, data interface{}) error
}

// EncounterTimer adalah snapshot timer untuk satu kunjungan.
type EncounterTimer struct {
	ID_Kunjungan int `json:"id_kunjungan"`
	timer.Snapshot
}

// TimerService menyimpan satu timer triase per kunjungan IGD.
type TimerService struct {
	mu     sync.Mutex
	timers map[int]*timer.Timer

	cfg   timer.Config
	opts  []timer.Option
	pub   Publisher
	audit *audit.Store
	log   *zap.Logger
}

// NewTimerService memvalidasi cfg; opts diteruskan ke setiap timer baru.
func NewTimerService(cfg timer.Config, pub Publisher, store *audit.Store, log *zap.Logger, opts ...timer.Option) (*TimerService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TimerService{
		timers: make(map[int]*timer.Timer),
		cfg:    cfg,
		opts:   opts,
		pub:    pub,
		audit:  store,
		log:    log,
	}, nil
}

// Start menjalankan timer kunjungan, membuatnya bila belum ada.
func (s *TimerService) Start(idKunjungan int, actor string) (timer.Snapshot, error) {
	s.mu.Lock()
	tm, ok := s.timers[idKunjungan]
	if !ok {
		var err error
		tm, err = s.newTimer(idKunjungan)
		if err != nil {
			s.mu.Unlock()
			return timer.Snapshot{}, err
		}
		s.timers[idKunjungan] = tm
	}
	s.mu.Unlock()

	tm.Start()
	s.record(actor, "timer.start", idKunjungan)
	return tm.Snapshot(), nil
}

func (s *TimerService) Pause(idKunjungan int, actor string) (timer.Snapshot, error) {
	tm, err := s.lookup(idKunjungan)
	if err != nil {
		return timer.Snapshot{}, err
	}
	tm.Pause()
	s.record(actor, "timer.pause", idKunjungan)
	return tm.Snapshot(), nil
}

func (s *TimerService) Reset(idKunjungan int, actor string) (timer.Snapshot, error) {
	tm, err := s.lookup(idKunjungan)
	if err != nil {
		return timer.Snapshot{}, err
	}
	tm.Reset()
	s.record(actor, "timer.reset", idKunjungan)
	return tm.Snapshot(), nil
}

func (s *TimerService) Get(idKunjungan int) (timer.Snapshot, error) {
	tm, err := s.lookup(idKunjungan)
	if err != nil {
		return timer.Snapshot{}, err
	}
	return tm.Snapshot(), nil
}

// List mengembalikan semua timer aktif, urut berdasarkan id kunjungan.
func (s *TimerService) List() []EncounterTimer {
	s.mu.Lock()
	ids := make([]int, 0, len(s.timers))
	for id := range s.timers {
		ids = append(ids, id)
	}
	timers := make(map[int]*timer.Timer, len(s.timers))
	for id, tm := range s.timers {
		timers[id] = tm
	}
	s.mu.Unlock()

	sort.Ints(ids)
	list := make([]EncounterTimer, 0, len(ids))
	for _, id := range ids {
		list = append(list, EncounterTimer{ID_Kunjungan: id, Snapshot: timers[id].Snapshot()})
	}
	return list
}

// Remove menghentikan dan membuang timer kunjungan.
func (s *TimerService) Remove(idKunjungan int, actor string) error {
	s.mu.Lock()
	tm, ok := s.timers[idKunjungan]
	delete(s.timers, idKunjungan)
	s.mu.Unlock()
	if !ok {
		return ErrTimerNotFound
	}
	tm.Close()
	s.record(actor, "timer.remove", idKunjungan)
	return nil
}

// Close menghentikan semua timer; dipanggil saat server berhenti.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, tm := range s.timers {
		tm.Close()
		delete(s.timers, id)
	}
}

func (s *TimerService) lookup(idKunjungan int) (*timer.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tm, ok := s.timers[idKunjungan]
	if !ok {
		return nil, ErrTimerNotFound
	}
	return tm, nil
}

func (s *TimerService) newTimer(idKunjungan int) (*timer.Timer, error) {
	hooks := timer.Hooks{
		OnStart:    s.notify(idKunjungan, "start"),
		OnPause:    s.notify(idKunjungan, "pause"),
		OnReset:    s.notify(idKunjungan, "reset"),
		OnWarning:  s.alert(idKunjungan, timer.Warning),
		OnCritical: s.alert(idKunjungan, timer.Critical),
	}
	opts := append([]timer.Option{timer.WithHooks(hooks)}, s.opts...)
	return timer.New(s.cfg, opts...)
}

func (s *TimerService) notify(idKunjungan int, event string) func(timer.Snapshot) {
	return func(snap timer.Snapshot) {
		s.publish(idKunjungan, event, snap)
	}
}

func (s *TimerService) alert(idKunjungan int, state timer.AlertState) func(timer.Snapshot) {
	return func(snap timer.Snapshot) {
		s.log.Warn("Triage timer threshold reached",
			zap.Int("id_kunjungan", idKunjungan),
			zap.String("alert", string(state)),
			zap.Int("elapsed_seconds", snap.ElapsedSeconds))
		s.record(systemActor, "timer."+string(state), idKunjungan)
		s.publish(idKunjungan, string(state), snap)
	}
}

func (s *TimerService) publish(idKunjungan int, event string, snap timer.Snapshot) {
	data := map[string]interface{}{
		"id_kunjungan":    idKunjungan,
		"event":           event,
		"elapsed_seconds": snap.ElapsedSeconds,
		"run_state":       snap.RunState,
		"alert_state":     snap.AlertState,
	}
	if err := s.pub.Publish("triase_timer", data); err != nil {
		s.log.Error("Failed to broadcast timer event", zap.Int("id_kunjungan", idKunjungan), zap.Error(err))
	}
}

func (s *TimerService) record(actor, action string, idKunjungan int) {
	s.audit.Record(actor, action, "kunjungan:"+strconv.Itoa(idKunjungan), nil)
}
