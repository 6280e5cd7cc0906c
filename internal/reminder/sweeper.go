// Package reminder runs the deadline reminder sweep: once a minute it looks
// for projects due tomorrow whose reminder has not gone out yet and
// notifies the assigned freelancer.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"skillswap/internal/models"
	"skillswap/pkg/metrics"
	"skillswap/pkg/repository"
)

type Sweeper struct {
	projects      repository.ProjectRepo
	freelancers   repository.FreelancerRepo
	notifications repository.NotificationRepo
	logger        *slog.Logger
	interval      time.Duration

	running sync.Mutex // single-flight: a tick is skipped while a sweep runs
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewSweeper(projects repository.ProjectRepo, freelancers repository.FreelancerRepo, notifications repository.NotificationRepo, logger *slog.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		projects:      projects,
		freelancers:   freelancers,
		notifications: notifications,
		logger:        logger,
		interval:      interval,
		stop:          make(chan struct{}),
	}
}

// Start launches the sweep loop goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

// Stop signals the loop to stop and waits for it.
func (s *Sweeper) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			s.logger.Info("reminder sweeper stopping")
			return
		case <-ctx.Done():
			s.logger.Info("context canceled, reminder sweeper exiting")
			return
		case <-ticker.C:
			if !s.running.TryLock() {
				// previous sweep still in flight
				continue
			}
			if n, err := s.RunOnce(ctx, time.Now()); err != nil {
				s.logger.Error("deadline sweep", "err", err)
			} else if n > 0 {
				s.logger.Info("deadline reminders sent", "count", n)
			}
			s.running.Unlock()
		}
	}
}

// RunOnce performs one sweep relative to now and returns how many reminders
// were created. The window is the whole UTC day starting at tomorrow;
// reminder_sent keeps a project from ever triggering twice. Projects
// without an assigned freelancer produce no notification but are still
// marked, so the sweep stays idempotent.
func (s *Sweeper) RunOnce(ctx context.Context, nowTime time.Time) (int, error) {
	tomorrow := nowTime.UTC().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	due, err := s.projects.DueForReminder(ctx, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("select due projects: %w", err)
	}

	sent := 0
	for _, p := range due {
		if p.FreelancerID != nil {
			profile, err := s.freelancers.GetProfileByID(ctx, *p.FreelancerID)
			if err != nil {
				return sent, fmt.Errorf("resolve freelancer %d: %w", *p.FreelancerID, err)
			}
			if profile != nil {
				n := &models.Notification{
					UserID:  profile.UserID,
					Type:    models.NotificationSystem,
					Message: fmt.Sprintf("Reminder: your assigned project %q is due tomorrow.", p.Title),
				}
				if _, err := s.notifications.CreateNotification(ctx, n); err != nil {
					return sent, fmt.Errorf("create reminder notification for project %d: %w", p.ID, err)
				}
				metrics.IncrementRemindersSent()
				sent++
			}
		}
		if err := s.projects.MarkReminderSent(ctx, p.ID); err != nil {
			return sent, fmt.Errorf("mark reminder sent for project %d: %w", p.ID, err)
		}
	}

	return sent, nil
}
