// application/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"euro-rate-bot/pkg/logger"
)

// Schedule определяет расписание задачи
type Schedule struct {
	interval time.Duration
	delay    time.Duration
}

// Every создает расписание "каждые N времени"; первый запуск через N
func Every(d time.Duration) Schedule {
	return Schedule{interval: d, delay: d}
}

// After задает задержку перед первым запуском
func (s Schedule) After(delay time.Duration) Schedule {
	s.delay = delay
	return s
}

// Job описывает одну планируемую задачу
type Job struct {
	Name        string
	Description string
	Schedule    Schedule
	Timeout     time.Duration // 0 означает без ограничения
	Handler     func(ctx context.Context) error

	mu      sync.Mutex
	nextRun time.Time
	lastRun time.Time
	lastErr error
	runs    int
}

// Status возвращает текущее состояние задачи
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()

	status := JobStatus{
		Name:        j.Name,
		Description: j.Description,
		Interval:    j.Schedule.interval.String(),
		NextRun:     j.nextRun,
		LastRun:     j.lastRun,
		Runs:        j.runs,
	}
	if j.lastErr != nil {
		status.LastErr = j.lastErr.Error()
	}
	return status
}

// JobStatus снапшот состояния задачи
type JobStatus struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Interval    string    `json:"interval"`
	NextRun     time.Time `json:"next_run"`
	LastRun     time.Time `json:"last_run"`
	LastErr     string    `json:"last_error,omitempty"`
	Runs        int       `json:"runs"`
}

// Scheduler управляет периодическими задачами приложения
type Scheduler struct {
	jobs    []*Job
	mu      sync.RWMutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New создает новый планировщик
func New() *Scheduler {
	return &Scheduler{}
}

// Register добавляет задачу в планировщик.
// Должен вызываться до Start().
func (s *Scheduler) Register(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	logger.Info("📋 [Scheduler] Зарегистрирована задача %q: каждые %v, первый запуск через %v",
		job.Name, job.Schedule.interval, job.Schedule.delay)
}

// Start запускает каждую задачу в своей горутине до отмены ctx или Stop()
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, job := range jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, job)
		}()
	}
	logger.Info("✅ [Scheduler] Запущен (%d задач)", len(jobs))
}

// Stop останавливает планировщик и ждёт завершения текущих задач
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	logger.Info("🛑 [Scheduler] Остановлен")
}

// Jobs возвращает статус всех задач
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.RLock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	statuses := make([]JobStatus, len(jobs))
	for i, j := range jobs {
		statuses[i] = j.Status()
	}
	return statuses
}

// loop выполняет задачу по расписанию; запуски одной задачи не пересекаются
func (s *Scheduler) loop(ctx context.Context, job *Job) {
	wait := job.Schedule.delay
	for {
		job.mu.Lock()
		job.nextRun = time.Now().Add(wait)
		job.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.run(ctx, job)
		wait = job.Schedule.interval
	}
}

// run выполняет одну задачу и обновляет её состояние
func (s *Scheduler) run(ctx context.Context, job *Job) {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	logger.Debug("▶️  [Scheduler] Запуск задачи %q", job.Name)
	start := time.Now()

	err := s.safeCall(ctx, job)
	elapsed := time.Since(start)

	job.mu.Lock()
	job.lastRun = start
	job.lastErr = err
	job.runs++
	job.mu.Unlock()

	if err != nil {
		logger.Error("❌ [Scheduler] Задача %q завершилась с ошибкой за %v: %v", job.Name, elapsed, err)
	} else {
		logger.Debug("✅ [Scheduler] Задача %q выполнена за %v", job.Name, elapsed)
	}
}

// safeCall защищает цикл задачи от паники обработчика
func (s *Scheduler) safeCall(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Job: job.Name, Value: r}
		}
	}()
	return job.Handler(ctx)
}
