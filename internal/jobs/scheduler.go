package jobs

import (
	"fmt"
	"log"

	"TravelCrmSaas/internal/logger"
	"TravelCrmSaas/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CronService struct {
	config map[string]interface{}
	db     *pgxpool.Pool
}

func NewCronService(cfg map[string]interface{}, db *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		db:     db,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	reminderConfig := NewDefaultReminderConfig()

	// Override reminder config from services.yaml if provided
	if s.config != nil {
		if schedule, ok := s.config["reminder_schedule"].(string); ok && schedule != "" {
			reminderConfig.Schedule = schedule
		}
		if batchSize, ok := s.config["batch_size"].(int); ok && batchSize > 0 {
			reminderConfig.BatchSize = batchSize
		}
	}

	if err := RunReminderSweep(reminderConfig, s.db); err != nil {
		return fmt.Errorf("failed to start reminder sweep: %v", err)
	}

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started with reminder sweep")
	}
	log.Println("Cron service started, reminder sweep scheduled")

	return nil
}

func (s *CronService) Stop() error {
	StopReminderSweep()
	return nil
}
