package crm

import (
	"database/sql"

	"TravelCrmSaas/internal/serviceiface"
)

type CRMService struct {
	config map[string]interface{}
	db     *sql.DB
}

func NewCRMService(cfg map[string]interface{}, db *sql.DB) serviceiface.Service {
	return &CRMService{config: cfg, db: db}
}

func (s *CRMService) Name() string {
	return "crm"
}

func (s *CRMService) Start() error {
	go StartCRMService(s.db)
	return nil
}

func (s *CRMService) Stop() error {
	return nil
}
