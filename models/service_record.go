package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRecord is one scheduled job: who it is for, where, what gets done,
// what it costs and the time window it occupies on the calendar.
type ServiceRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"providerId"`

	ClientName         string `gorm:"not null" json:"clientName"`
	ClientPhone        string `gorm:"not null" json:"clientPhone"`
	Address            string `gorm:"not null" json:"address"`
	ServiceDescription string `gorm:"not null" json:"serviceDescription"`

	// Locale-formatted currency text, e.g. "R$ 150,00". The mobile client
	// owns the formatting; reports parse it fail-soft.
	TotalValue string `gorm:"not null" json:"totalValue"`

	Date time.Time `gorm:"not null" json:"date"`
	// Derived YYYY-MM-DD (UTC) of Date. All same-day and same-month
	// comparisons happen on this key.
	DateKey string `gorm:"index;not null" json:"dateKey"`

	StartTime string `gorm:"type:varchar(5);not null" json:"startTime"` // "HH:MM"
	EndTime   string `gorm:"type:varchar(5);not null" json:"endTime"`   // "HH:MM"

	CreatedAt time.Time `json:"createdAt"`
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
