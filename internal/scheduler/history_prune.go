package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes history entries older than a retention period.
type Pruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// HistoryPruneScheduler periodically trims the admin change history.
type HistoryPruneScheduler struct {
	pruner    Pruner
	schedule  string
	retention time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isPruning bool
}

// NewHistoryPruneScheduler creates a scheduler. A non-positive retention
// disables pruning.
func NewHistoryPruneScheduler(pruner Pruner, schedule string, retention time.Duration) *HistoryPruneScheduler {
	return &HistoryPruneScheduler{
		pruner:    pruner,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if pruning is enabled. The scheduler stops
// when ctx is cancelled.
func (s *HistoryPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.retention <= 0 {
		log.Printf("History prune scheduler: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunNow(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule prune job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("History prune scheduler: started with schedule '%s', keeping %v", s.schedule, s.retention)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler and waits for a running prune.
func (s *HistoryPruneScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	// Stop accepting new jobs; the lock must be free while waiting since
	// a running prune takes it on the way out
	ctx := s.cron.Stop()
	s.mu.Unlock()

	<-ctx.Done()
	log.Printf("History prune scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *HistoryPruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next prune will occur
func (s *HistoryPruneScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow prunes immediately and returns the number of removed entries.
// Overlapping runs are skipped.
func (s *HistoryPruneScheduler) RunNow(ctx context.Context) int64 {
	s.mu.Lock()
	if s.isPruning {
		s.mu.Unlock()
		log.Printf("History prune: skipped (already pruning)")
		return 0
	}
	s.isPruning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isPruning = false
		s.mu.Unlock()
	}()

	deleted, err := s.pruner.Prune(ctx, s.retention)
	if err != nil {
		log.Printf("History prune: failed: %v", err)
		return 0
	}
	log.Printf("History prune: removed %d entries older than %v", deleted, s.retention)
	return deleted
}
