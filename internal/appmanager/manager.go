package appmanager

import (
	"database/sql"
	"fmt"
	"os"
	"sort"
	"sync"

	"TravelCrmSaas/api"
	"TravelCrmSaas/api/auth"
	"TravelCrmSaas/api/crm"
	"TravelCrmSaas/api/dash"
	"TravelCrmSaas/api/imports"
	"TravelCrmSaas/internal/jobs"
	"TravelCrmSaas/internal/logger"
	"TravelCrmSaas/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

// AppManager owns the service lifecycle and the store handles injected from main.
type AppManager struct {
	services []serviceiface.Service
	db       *sql.DB
	pool     *pgxpool.Pool
	mu       sync.Mutex
}

func NewAppManager(db *sql.DB, pool *pgxpool.Pool) *AppManager {
	return &AppManager{
		services: make([]serviceiface.Service, 0),
		db:       db,
		pool:     pool,
	}
}

func (am *AppManager) constructors() map[string]func(map[string]interface{}) serviceiface.Service {
	return map[string]func(map[string]interface{}) serviceiface.Service{
		"logger": func(cfg map[string]interface{}) serviceiface.Service {
			return logger.NewLoggerService(cfg)
		},
		"auth": func(cfg map[string]interface{}) serviceiface.Service {
			var maxUsers int
			var cleanerPeriod int

			toInt := func(v interface{}) int {
				switch t := v.(type) {
				case int:
					return t
				case int64:
					return int(t)
				case float64:
					return int(t)
				case string:
					var parsed int
					if _, err := fmt.Sscanf(t, "%d", &parsed); err == nil {
						return parsed
					}
				}
				return 0
			}

			if cfg != nil {
				if v, ok := cfg["max_users"]; ok && v != nil {
					maxUsers = toInt(v)
				}
				if v, ok := cfg["session_cleaner_period"]; ok && v != nil {
					cleanerPeriod = toInt(v)
				}
			}
			return auth.NewAuthService(am.db, maxUsers, cleanerPeriod)
		},
		"crm": func(cfg map[string]interface{}) serviceiface.Service {
			return crm.NewCRMService(cfg, am.db)
		},
		"imports": func(cfg map[string]interface{}) serviceiface.Service {
			return imports.NewImportService(cfg, am.db)
		},
		"dash": func(cfg map[string]interface{}) serviceiface.Service {
			return dash.NewDashService(cfg, am.db)
		},
		"cron": func(cfg map[string]interface{}) serviceiface.Service {
			return jobs.NewCronService(cfg, am.pool)
		},
		"gateway": func(cfg map[string]interface{}) serviceiface.Service {
			return api.NewGatewayService(cfg)
		},
	}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for _, service := range am.services {
		fmt.Println("Starting service:", service.Name())
		if err := service.Start(); err != nil {
			return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
		}
	}
	return nil
}

func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	for i := len(am.services) - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil {
			return fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	return nil
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}

	// sort by start_order
	sort.Slice(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})

	return seq.Services, nil
}

func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) {
	constructors := am.constructors()
	for _, svc := range configs {
		if constructor, ok := constructors[svc.Name]; ok {
			service := constructor(svc.Config)
			am.RegisterService(service)
			if svc.Name == "auth" {
				if realAuthSvc, ok := service.(*auth.AuthService); ok {
					api.SetAuthService(realAuthSvc)
					auth.SetGlobalAuthService(realAuthSvc)
				}
			}
		}
	}

	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
}

func (am *AppManager) GetServiceByName(name string) serviceiface.Service {
	for _, svc := range am.services {
		if svc.Name() == name {
			return svc
		}
	}
	return nil
}
