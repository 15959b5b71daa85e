package scheduler

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/sandeepkv93/mindflow/internal/model"
)

const DefaultPollInterval = time.Minute

// ReminderSource lists open todos whose reminder time has passed.
type ReminderSource interface {
	GetTodosWithReminders(ctx context.Context) ([]model.Todo, error)
}

// Poller asks the source for due reminders on an interval and feeds them to
// the engine. A todo fires at most once per reminder time.
type Poller struct {
	engine   *Engine
	source   ReminderSource
	interval time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	seen   map[string]time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(engine *Engine, source ReminderSource, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Poller{
		engine:   engine,
		source:   source,
		interval: interval,
		logger:   logger,
		seen:     make(map[string]time.Time),
	}
}

// Start polls once immediately and then on every tick until Stop or ctx is
// done.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.run(ctx)
}

func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.PollOnce(ctx); err != nil && ctx.Err() == nil {
			p.logger.Printf("scheduler: poll reminders: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// PollOnce schedules every due reminder not already emitted and returns how
// many were scheduled.
func (p *Poller) PollOnce(ctx context.Context) (int, error) {
	todos, err := p.source.GetTodosWithReminders(ctx)
	if err != nil {
		return 0, err
	}
	scheduled := 0
	for _, todo := range todos {
		if todo.ReminderAt == nil {
			continue
		}
		at := todo.ReminderAt.UTC()
		if !p.markSeen(todo.ID, at) {
			continue
		}
		err := p.engine.Schedule(ReminderEvent{
			ID:        ReminderEventID(todo.ID),
			TodoID:    todo.ID,
			Title:     todo.Title,
			TriggerAt: at,
		})
		if err != nil {
			return scheduled, err
		}
		scheduled++
	}
	return scheduled, nil
}

// ReminderEventID is the engine event id used for a todo's reminder.
func ReminderEventID(todoID string) string {
	return "reminder:" + todoID
}

func (p *Poller) markSeen(todoID string, at time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prev, ok := p.seen[todoID]; ok && prev.Equal(at) {
		return false
	}
	p.seen[todoID] = at
	return true
}
