package imports

import (
	"database/sql"

	"TravelCrmSaas/internal/serviceiface"
)

type ImportService struct {
	config map[string]interface{}
	db     *sql.DB
}

func NewImportService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &ImportService{config: cfg, db: db}
}

func (s *ImportService) Name() string {
	return "imports"
}

func (s *ImportService) Start() error {
	go StartImportService(s.db)
	return nil
}

func (s *ImportService) Stop() error {
	return nil
}
