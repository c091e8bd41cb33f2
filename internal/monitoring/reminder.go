package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/services"
)

// reminderWindow is how far ahead of the due date a goal gets its
// reminder.
const reminderWindow = 24 * time.Hour

// sweepTimeout bounds each database sweep.
const sweepTimeout = 30 * time.Second

// GoalSource is the slice of the goal service the reminder needs.
type GoalSource interface {
	GetDueUnremindedGoals(ctx context.Context, deadline time.Time) ([]models.Goal, error)
	MarkReminded(ctx context.Context, id string) error
}

// Reminder periodically flags goals approaching their due date and
// records a reminder event on the owner's activity feed. It also
// prunes activity events past their retention.
type Reminder struct {
	goals     GoalSource
	events    services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	done      chan bool
}

// NewReminder creates a reminder sweeping on the given standard cron
// expression.
func NewReminder(goals GoalSource, events services.EventServiceProvider, cronExpr string, retention time.Duration) (*Reminder, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", cronExpr, err)
	}
	return &Reminder{
		goals:     goals,
		events:    events,
		schedule:  schedule,
		retention: retention,
		done:      make(chan bool),
	}, nil
}

// Run starts the reminder loop. It sweeps once immediately, then on
// the configured schedule until Stop is called.
func (r *Reminder) Run() {
	log.Info().Msg("Starting goal reminder loop")
	r.sweep()

	for {
		next := r.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-r.done:
			timer.Stop()
			log.Info().Msg("Stopping goal reminder loop")
			return
		case <-timer.C:
			r.sweep()
		}
	}
}

// Stop halts the reminder loop.
func (r *Reminder) Stop() {
	r.done <- true
}

func (r *Reminder) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	goals, err := r.goals.GetDueUnremindedGoals(ctx, time.Now().Add(reminderWindow))
	if err != nil {
		log.Error().Err(err).Msg("Reminder sweep failed to list due goals")
		return
	}

	for _, goal := range goals {
		message := fmt.Sprintf("Goal %q is due %s", goal.Title, goal.DueDate.Format("Jan 2 15:04"))
		if err := r.events.CreateEvent(ctx, "goal_due", "warn", message, &goal.UserID); err != nil {
			log.Error().Err(err).Str("goal_id", goal.ID).Msg("Failed to record goal reminder")
			continue
		}
		if err := r.goals.MarkReminded(ctx, goal.ID); err != nil {
			log.Error().Err(err).Str("goal_id", goal.ID).Msg("Failed to mark goal as reminded")
		}
	}

	if _, err := r.events.PruneOlderThan(ctx, time.Now().Add(-r.retention)); err != nil {
		log.Error().Err(err).Msg("Failed to prune old activity events")
	}
}
