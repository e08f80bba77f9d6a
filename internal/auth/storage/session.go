package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

// Session state lives in the app_state key-value table under two fixed keys:
// the token and the serialized principal are stored side by side.
const (
	keyAuthToken = "auth_token"
	keyUser      = "user"
)

type appState struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (appState) TableName() string {
	return "app_state"
}

// SessionRepository persists the single active session on the audit store.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) SaveSession(principal *user.Principal, token string) error {
	payload, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("marshal principal: %w", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		entries := []appState{
			{Key: keyAuthToken, Value: token, UpdatedAt: time.Now()},
			{Key: keyUser, Value: string(payload), UpdatedAt: time.Now()},
		}
		for _, e := range entries {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSession returns the persisted principal and token, or nils when no
// session has been saved.
func (r *SessionRepository) LoadSession() (*user.Principal, string, error) {
	var tokenRow appState
	err := r.db.Where("key = ?", keyAuthToken).First(&tokenRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var userRow appState
	err = r.db.Where("key = ?", keyUser).First(&userRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	var principal user.Principal
	if err := json.Unmarshal([]byte(userRow.Value), &principal); err != nil {
		return nil, "", fmt.Errorf("unmarshal session principal: %w", err)
	}

	return &principal, tokenRow.Value, nil
}

func (r *SessionRepository) ClearSession() error {
	return r.db.Where("key IN ?", []string{keyAuthToken, keyUser}).Delete(&appState{}).Error
}
