// services/reminder_service.go
package services

import (
	"fmt"
	"jobtrack-backend/models"
	"jobtrack-backend/utils"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService messages clients the day before their scheduled visit.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	var providers []models.User
	if err := s.db.Find(&providers, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch providers: %v", err)
		return
	}

	tomorrow := utils.DateKey(time.Now().AddDate(0, 0, 1))
	for _, provider := range providers {
		s.ProcessProviderReminders(provider.ID, tomorrow)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) ProcessProviderReminders(providerID uuid.UUID, dateKey string) {
	var records []models.ServiceRecord
	if err := s.db.Where("provider_id = ? AND date_key = ?", providerID, dateKey).
		Find(&records).Error; err != nil {
		log.Printf("Provider %s: Failed to get records for %s: %v", providerID, dateKey, err)
		return
	}

	for _, record := range records {
		s.sendReminder(providerID, record)
	}
}

func (s *ReminderService) sendReminder(providerID uuid.UUID, record models.ServiceRecord) {
	message := fmt.Sprintf(
		"Olá %s! Lembrete: sua visita está agendada para amanhã entre %s e %s no endereço %s.",
		record.ClientName, record.StartTime, record.EndTime, record.Address,
	)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(record.ClientPhone, "+") {
		to = "whatsapp:" + record.ClientPhone
		channel = "whatsapp"
	} else {
		to = record.ClientPhone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", record.ClientPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", record.ClientPhone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", record.ClientPhone)
	}

	reminderLog := models.ReminderLog{
		ProviderID: providerID,
		RecordID:   record.ID,
		Message:    message,
		Status:     status,
		Error:      errorMsg,
		Channel:    channel,
		SentAt:     time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for record %s: %v", record.ID, err)
	}
}
