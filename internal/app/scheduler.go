package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bobmcallan/papertrade/internal/common"
	"github.com/bobmcallan/papertrade/internal/interfaces"
	"github.com/bobmcallan/papertrade/internal/realtime"
	"github.com/bobmcallan/papertrade/internal/services/advisor"
)

// ChatSessionMaxIdle is how long an unused chat session is kept
const ChatSessionMaxIdle = time.Hour

// EventInsights is the websocket event type for pushed insight lists
const EventInsights = "insights"

// Job is a unit of scheduled work
type Job interface {
	Run() error
	Name() string
}

// Scheduler runs jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
}

// NewScheduler creates a scheduler. Schedules accept an optional seconds field
// and descriptors such as "@every 30s".
func NewScheduler(logger *common.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.cron.Entries())).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// AddJob registers job on schedule
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		start := time.Now()
		if err := job.Run(); err != nil {
			s.logger.Warn().Err(err).Str("job", job.Name()).Msg("Job failed")
			return
		}
		s.logger.Trace().Str("job", job.Name()).Dur("elapsed", time.Since(start)).Msg("Job completed")
	})
	if err != nil {
		return err
	}

	s.logger.Debug().Str("schedule", schedule).Str("job", job.Name()).Msg("Job registered")
	return nil
}

// insightRefreshJob re-evaluates insights for every user with a live websocket
// and pushes the visible list to them.
type insightRefreshJob struct {
	hub      *realtime.Hub
	insights interfaces.InsightService
	logger   *common.Logger
	timeout  time.Duration
}

func (j *insightRefreshJob) Name() string { return "insight-refresh" }

func (j *insightRefreshJob) Run() error {
	users := j.hub.Users()
	if len(users) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	pushed := 0
	for _, u := range users {
		list, err := j.insights.ForUser(ctx, u, false)
		if err != nil {
			j.logger.Warn().Err(err).Str("user", u).Msg("Insight refresh failed")
			continue
		}
		pushed += j.hub.SendTo(u, EventInsights, list)
	}

	j.logger.Debug().Int("users", len(users)).Int("pushed", pushed).Msg("Insight refresh complete")
	return nil
}

type sessionPruneJob struct {
	advisor *advisor.Service
	maxIdle time.Duration
}

func (j *sessionPruneJob) Name() string { return "chat-session-prune" }

func (j *sessionPruneJob) Run() error {
	j.advisor.PruneIdle(j.maxIdle)
	return nil
}
