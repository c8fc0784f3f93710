package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"TravelCrmSaas/internal/logger"
	"TravelCrmSaas/internal/serviceiface"
)

type UserSession struct {
	SessionID     string
	UserID        string
	Name          string
	Email         string
	Role          string
	IsAdmin       bool
	LastLoginTime string
	ClientIP      string
	IsLoggedIn    bool
}

type AuthService struct {
	db            *sql.DB
	maxUsers      int
	cleanerPeriod int
	users         map[string]*UserSession
	userPointers  map[string]*UserSession
	mu            sync.Mutex
	stopCh        chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers int, cleanerPeriod int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 100
	}
	if cleanerPeriod <= 0 {
		cleanerPeriod = 10
	}
	return &AuthService{
		db:            db,
		maxUsers:      maxUsers,
		cleanerPeriod: cleanerPeriod,
		users:         make(map[string]*UserSession),
		userPointers:  make(map[string]*UserSession),
		stopCh:        make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

func (a *AuthService) Login(email, password string, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, session := range a.users {
		if session.Email == email && session.IsLoggedIn {
			session.LastLoginTime = time.Now().Format(time.RFC3339)
			session.ClientIP = clientIP
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("User %s re-logged in, returning existing session", email))
			}
			return session, nil
		}
	}

	if len(a.users) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var (
		userID, name, userEmail string
		role                    sql.NullString
		isAdmin                 sql.NullBool
	)

	query := `
    SELECT id, name, email, role, is_admin
    FROM users
    WHERE LOWER(email) = LOWER($1) AND password = $2
    `

	err := a.db.QueryRow(query, email, password).Scan(
		&userID, &name, &userEmail, &role, &isAdmin,
	)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	sessionID := generateSessionID()
	session := &UserSession{
		SessionID:     sessionID,
		UserID:        userID,
		Name:          name,
		Email:         userEmail,
		Role:          role.String,
		IsAdmin:       isAdmin.Bool,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
		IsLoggedIn:    true,
	}

	a.users[sessionID] = session
	a.userPointers[userID] = session

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("User logged in: %s", email))
	}

	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, exists := a.users[sessionID]
	if !exists {
		return errors.New("session not found")
	}
	delete(a.users, sessionID)
	delete(a.userPointers, session.UserID)

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged out: " + session.UserID)
	}

	return nil
}

var globalAuthService *AuthService

// SetGlobalAuthService sets the global AuthService instance
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := make([]*UserSession, 0, len(a.users))
	for _, s := range a.users {
		sessions = append(sessions, s)
	}
	return sessions
}

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(time.Duration(a.cleanerPeriod) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// session expiry logic can be added here
		}
	}
}

func generateSessionID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
