package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null"`
	RecordID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Message    string    `gorm:"type:text"`
	Status     string    `gorm:"type:varchar(20)"` // sent, failed
	Error      string    `gorm:"type:text"`
	Channel    string    `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt     time.Time
	gorm.Model
}

func (r *ReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
