package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Parser accepts six field cron expressions with a leading seconds field and
// descriptors such as @daily or @every 1h.
var Parser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseSchedule validates a cron expression
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := Parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return schedule, nil
}

// Scheduler runs a task on a cron schedule. Overlapping runs are skipped.
type Scheduler struct {
	expr     string
	schedule cron.Schedule
	task     func(context.Context)
	cron     *cron.Cron
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
}

// New creates a new Scheduler instance
func New(expr string, task func(context.Context)) (*Scheduler, error) {
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		expr:     expr,
		schedule: schedule,
		task:     task,
	}, nil
}

// Start schedules the task. With firstRunImmediately the task also runs once right away.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.cron = cron.New(
		cron.WithParser(Parser),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	s.cron.Schedule(s.schedule, cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		s.task(ctx)
	}))
	s.cron.Start()

	log.Printf("Scheduler: started with schedule %q, next run at %s",
		s.expr, s.schedule.Next(time.Now()).Format(time.RFC3339))

	if firstRunImmediately {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.task(ctx)
		}()
	}
}

// Stop cancels running tasks and waits for them to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.running = false

	log.Printf("Scheduler: stopped")
}

// IsRunning returns true if the task is currently scheduled
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled time after now
func (s *Scheduler) NextRun() time.Time {
	return s.schedule.Next(time.Now())
}
