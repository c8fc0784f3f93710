package jobs

import (
	"context"
	"fmt"
	"time"

	"TravelCrmSaas/internal/config"
	"TravelCrmSaas/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// ReminderConfig controls the due-reminder sweep.
type ReminderConfig struct {
	Schedule  string
	TimeZone  string
	BatchSize int
}

func NewDefaultReminderConfig() *ReminderConfig {
	return &ReminderConfig{
		Schedule:  config.DefaultReminderSchedule,
		TimeZone:  config.DefaultTimeZone,
		BatchSize: config.ReminderBatchSize,
	}
}

var reminderCron *cron.Cron

// RunReminderSweep schedules the periodic scan that flags overdue,
// not-yet-completed reminders as due.
func RunReminderSweep(cfg *ReminderConfig, db *pgxpool.Pool) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultReminderSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = config.ReminderBatchSize
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid timezone for reminder sweep: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		processDueReminders(db, cfg.BatchSize, loc)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %v", err)
	}

	c.Start()
	reminderCron = c
	return nil
}

// StopReminderSweep halts the scheduled sweep, waiting for a running pass.
func StopReminderSweep() {
	if reminderCron != nil {
		ctx := reminderCron.Stop()
		<-ctx.Done()
		reminderCron = nil
	}
}

func processDueReminders(db *pgxpool.Pool, batchSize int, loc *time.Location) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tag, err := db.Exec(ctx, `
		UPDATE reminders SET is_due = TRUE
		WHERE id IN (
			SELECT id FROM reminders
			WHERE due_date <= now() AND is_completed = FALSE AND is_due = FALSE
			ORDER BY due_date ASC
			LIMIT $1
		)`, batchSize)
	if err != nil {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Reminder sweep failed: %v", err))
		}
		return
	}

	if tag.RowsAffected() > 0 && logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Reminder sweep flagged %d reminders at %s",
			tag.RowsAffected(), time.Now().In(loc).Format(time.RFC3339)))
	}
}
