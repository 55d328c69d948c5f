// Package scheduler runs the periodic notification jobs: digests, spend
// checks, goal milestones, and the transport liveness probe.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
	"github.com/investbot-app/investbot/internal/report"
	"github.com/investbot-app/investbot/internal/service"
)

// Prober is the slice of the supervisor the scheduler needs to keep the
// transport session alive.
type Prober interface {
	Probe(ctx context.Context)
}

// Config holds the job cadences and notification thresholds.
type Config struct {
	DailySpec   string
	WeeklySpec  string
	HourlySpec  string
	GoalsSpec   string
	MonthlySpec string
	ProbeSpec   string

	// PaceDelay is the pause between consecutive sends in a fan-out.
	PaceDelay time.Duration

	// The hourly spend check fires only when today's expenses exceed
	// HourlyThreshold and HourlyMultiplier times the user's average.
	HourlyThreshold  decimal.Decimal
	HourlyMultiplier decimal.Decimal

	// Milestones are the goal progress percentages worth celebrating.
	Milestones []int
}

// DefaultConfig returns the production cadences and thresholds.
func DefaultConfig() Config {
	return Config{
		DailySpec:        "0 9 * * *",
		WeeklySpec:       "0 20 * * 0",
		HourlySpec:       "0 * * * *",
		GoalsSpec:        "0 18 * * *",
		MonthlySpec:      "0 10 1 * *",
		ProbeSpec:        "@every 30m",
		PaceDelay:        2 * time.Second,
		HourlyThreshold:  decimal.NewFromInt(500),
		HourlyMultiplier: decimal.NewFromInt(3),
		Milestones:       []int{25, 50, 75, 90},
	}
}

// JobStatus describes one registered cron job for the admin surface.
type JobStatus struct {
	Next time.Time `json:"next"`
	Prev time.Time `json:"prev,omitempty"`
	Name string    `json:"name"`
	Spec string    `json:"spec"`
}

type registeredJob struct {
	name string
	spec string
	id   cron.EntryID
}

// Scheduler owns the cron runner and the notification fan-out logic.
type Scheduler struct {
	cron    *cron.Cron
	store   service.Storage
	sender  service.Sender
	prober  Prober
	reports *report.Generator
	clock   common.Clock
	jobs    []registeredJob
	cfg     Config
}

// New creates a scheduler. The prober may be nil when no liveness probe
// is wanted (tests, one-shot tools).
func New(store service.Storage, sender service.Sender, prober Prober, clock common.Clock, cfg Config) *Scheduler {
	if clock == nil {
		clock = common.RealClock{}
	}
	if cfg.PaceDelay < 0 {
		cfg.PaceDelay = 0
	}
	return &Scheduler{
		cron:    cron.New(),
		store:   store,
		sender:  sender,
		prober:  prober,
		clock:   clock,
		cfg:     cfg,
		reports: report.NewGenerator(store, clock.Now),
	}
}

// Start registers all jobs and launches the cron runner. The given context
// bounds every job execution; Stop halts scheduling.
func (s *Scheduler) Start(ctx context.Context) error {
	jobs := []struct {
		run  func(context.Context)
		name string
		spec string
	}{
		{s.RunDailyDigest, "daily-digest", s.cfg.DailySpec},
		{s.RunWeeklyDigest, "weekly-digest", s.cfg.WeeklySpec},
		{s.RunHourlySpendCheck, "hourly-spend-check", s.cfg.HourlySpec},
		{s.RunGoalMilestones, "goal-milestones", s.cfg.GoalsSpec},
		{s.RunMonthlyAnalysis, "monthly-analysis", s.cfg.MonthlySpec},
	}
	if s.prober != nil {
		jobs = append(jobs, struct {
			run  func(context.Context)
			name string
			spec string
		}{s.runProbe, "liveness-probe", s.cfg.ProbeSpec})
	}

	for _, job := range jobs {
		run := job.run
		id, err := s.cron.AddFunc(job.spec, func() { run(ctx) })
		if err != nil {
			return fmt.Errorf("failed to register job %s: %w", job.name, err)
		}
		s.jobs = append(s.jobs, registeredJob{name: job.name, spec: job.spec, id: id})
	}

	s.cron.Start()
	slog.Info("Scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop halts the cron runner. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Jobs reports the registered jobs with their next and previous run times.
func (s *Scheduler) Jobs() []JobStatus {
	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := s.cron.Entry(job.id)
		statuses = append(statuses, JobStatus{
			Name: job.name,
			Spec: job.spec,
			Next: entry.Next,
			Prev: entry.Prev,
		})
	}
	return statuses
}

// fanOut delivers one rendered message per active user, sequentially and
// paced. Render or send failures cost that user only, never the cycle; an
// error return means the recipient list itself could not be loaded.
func (s *Scheduler) fanOut(ctx context.Context, jobName string, render func(context.Context, *model.User) (string, error)) (service.BroadcastResult, error) {
	var result service.BroadcastResult

	users, err := s.store.GetAllActiveUsers(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list recipients: %w", err)
	}

	delivered := false
	for i := range users {
		user := &users[i]

		if delivered {
			if err := s.clock.Sleep(ctx, s.cfg.PaceDelay); err != nil {
				return result, nil
			}
		}
		delivered = false

		text, err := render(ctx, user)
		if err != nil {
			common.LogError(err, "Fan-out render failed", common.Fields{"job": jobName, "user_id": user.ID})
			result.Failed++
			continue
		}
		if text == "" {
			continue
		}

		if err := s.sender.Send(ctx, user.Phone, text); err != nil {
			common.LogError(err, "Fan-out send failed", common.Fields{"job": jobName, "user_id": user.ID})
			result.Failed++
			continue
		}
		result.Sent++
		delivered = true
	}

	common.LogInfo("Fan-out finished", common.Fields{
		"job": jobName, "sent": result.Sent, "failed": result.Failed,
	})
	return result, nil
}

// SendBroadcast pushes the same text to every active user and reports how
// many sends succeeded and failed. Sent plus Failed equals the number of
// active users.
func (s *Scheduler) SendBroadcast(ctx context.Context, text string) (service.BroadcastResult, error) {
	return s.fanOut(ctx, "broadcast", func(context.Context, *model.User) (string, error) {
		return text, nil
	})
}

// Notify sends a text to one user by ID.
func (s *Scheduler) Notify(ctx context.Context, userID, text string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load notification target: %w", err)
	}
	return s.sender.Send(ctx, user.Phone, text)
}

// RunDailyDigest sends yesterday's summary to every user that moved money.
func (s *Scheduler) RunDailyDigest(ctx context.Context) {
	s.runJob(ctx, "daily-digest", s.reports.Daily)
}

// RunWeeklyDigest sends the trailing-week summary to every active user.
func (s *Scheduler) RunWeeklyDigest(ctx context.Context) {
	s.runJob(ctx, "weekly-digest", s.reports.Weekly)
}

// RunMonthlyAnalysis sends the previous month's analysis to every user
// with transactions in that month.
func (s *Scheduler) RunMonthlyAnalysis(ctx context.Context) {
	s.runJob(ctx, "monthly-analysis", s.reports.Monthly)
}

// RunHourlySpendCheck warns users whose spending today is both above the
// absolute threshold and a multiple of their usual average.
func (s *Scheduler) RunHourlySpendCheck(ctx context.Context) {
	s.runJob(ctx, "hourly-spend-check", s.renderSpendWarning)
}

func (s *Scheduler) renderSpendWarning(ctx context.Context, user *model.User) (string, error) {
	now := s.clock.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	txns, err := s.store.GetTransactionsByPeriod(ctx, user.ID, dayStart, now)
	if err != nil {
		return "", err
	}
	var today decimal.Decimal
	for _, txn := range txns {
		if txn.Type == model.TransactionTypeExpense {
			today = today.Add(txn.Amount)
		}
	}
	if !today.GreaterThan(s.cfg.HourlyThreshold) {
		return "", nil
	}

	avg, err := s.store.GetAverageExpense(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if !avg.IsPositive() || !today.GreaterThan(avg.Mul(s.cfg.HourlyMultiplier)) {
		return "", nil
	}

	return fmt.Sprintf("🚨 *Atenção aos gastos!*\n\n"+
		"Você já gastou R$ %s hoje, bem acima do seu ritmo usual.\n\n"+
		"💡 Que tal revisar os gastos do dia antes da próxima compra?",
		today.StringFixed(2)), nil
}

// RunGoalMilestones congratulates users whose active goals sit exactly on
// a milestone percentage. Progress is floored to the nearest multiple of
// five before matching, so a goal can be celebrated again while it stays
// on the same milestone.
func (s *Scheduler) RunGoalMilestones(ctx context.Context) {
	s.runJob(ctx, "goal-milestones", s.renderMilestones)
}

func (s *Scheduler) runJob(ctx context.Context, name string, render func(context.Context, *model.User) (string, error)) {
	if _, err := s.fanOut(ctx, name, render); err != nil {
		common.LogError(err, "Scheduled job failed", common.Fields{"job": name})
	}
}

func (s *Scheduler) renderMilestones(ctx context.Context, user *model.User) (string, error) {
	goals, err := s.store.GetUserGoals(ctx, user.ID)
	if err != nil {
		return "", err
	}

	for _, goal := range goals {
		if goal.Status != model.GoalStatusActive {
			continue
		}
		milestone := int(goal.Progress()/5) * 5
		if !s.isMilestone(milestone) {
			continue
		}
		return fmt.Sprintf("🎉 *Parabéns, %s!*\n\n"+
			"Você atingiu *%d%%* da meta *%s*!\n\n"+
			"💰 Atual: R$ %s\n🎯 Meta: R$ %s\n\n"+
			"Continue firme, falta pouco! 💪",
			user.FirstName(), milestone, goal.Title,
			goal.CurrentAmount.StringFixed(2), goal.TargetAmount.StringFixed(2)), nil
	}
	return "", nil
}

func (s *Scheduler) isMilestone(value int) bool {
	for _, m := range s.cfg.Milestones {
		if value == m {
			return true
		}
	}
	return false
}

func (s *Scheduler) runProbe(ctx context.Context) {
	s.prober.Probe(ctx)
}
