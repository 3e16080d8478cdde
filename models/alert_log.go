// models/alert_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlertSent   = "sent"
	AlertFailed = "failed"
)

// AlertLog records every failure alert sent for a batch.
type AlertLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Recipient    string         `gorm:"type:varchar(40);not null" json:"recipient"`
	Channel      string         `gorm:"type:varchar(20)" json:"channel"` // sms, whatsapp
	Message      string         `gorm:"type:text" json:"message"`
	FailedSales  int            `json:"failedSales"`
	Status       string         `gorm:"type:varchar(20);index" json:"status"` // sent, failed
	ErrorMessage string         `gorm:"type:text" json:"errorMessage,omitempty"`
	MessageSID   string         `gorm:"type:varchar(64)" json:"messageSid,omitempty"`
	SentAt       time.Time      `gorm:"index" json:"sentAt"`
	CreatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *AlertLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
