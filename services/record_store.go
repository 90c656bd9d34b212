// services/record_store.go
package services

import (
	"jobtrack-backend/models"
	"jobtrack-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordFields carries everything the caller supplies when scheduling a job.
// ID and CreatedAt are assigned by the store.
type RecordFields struct {
	ClientName         string
	ClientPhone        string
	Address            string
	ServiceDescription string
	TotalValue         string
	Date               time.Time
	StartTime          string
	EndTime            string
}

// RecordPatch is a partial update; nil fields are left untouched.
type RecordPatch struct {
	ClientName         *string
	ClientPhone        *string
	Address            *string
	ServiceDescription *string
	TotalValue         *string
	Date               *time.Time
	StartTime          *string
	EndTime            *string
}

// RecordStore owns all persistence of service records, scoped per provider.
// Every record is its own row, so concurrent writers are serialized by the
// database instead of racing over one shared blob.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// List returns all of a provider's records in insertion order.
func (s *RecordStore) List(providerID uuid.UUID) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	err := s.db.Where("provider_id = ?", providerID).
		Order("created_at").
		Find(&records).Error
	return records, err
}

// ListByDate returns the provider's records sharing one calendar date,
// in insertion order.
func (s *RecordStore) ListByDate(providerID uuid.UUID, dateKey string) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	err := s.db.Where("provider_id = ? AND date_key = ?", providerID, dateKey).
		Order("created_at").
		Find(&records).Error
	return records, err
}

// ListByMonth returns the provider's records whose calendar date falls in
// the given YYYY-MM month, in insertion order.
func (s *RecordStore) ListByMonth(providerID uuid.UUID, monthKey string) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	err := s.db.Where("provider_id = ? AND date_key LIKE ?", providerID, monthKey+"-%").
		Order("created_at").
		Find(&records).Error
	return records, err
}

// Add assigns a fresh id and creation timestamp and persists the record.
func (s *RecordStore) Add(providerID uuid.UUID, f RecordFields) (models.ServiceRecord, error) {
	record := models.ServiceRecord{
		ProviderID:         providerID,
		ClientName:         f.ClientName,
		ClientPhone:        f.ClientPhone,
		Address:            f.Address,
		ServiceDescription: f.ServiceDescription,
		TotalValue:         f.TotalValue,
		Date:               f.Date,
		DateKey:            utils.DateKey(f.Date),
		StartTime:          f.StartTime,
		EndTime:            f.EndTime,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return models.ServiceRecord{}, err
	}
	return record, nil
}

// Update merges the patch over the stored record. ID and CreatedAt are
// preserved. Returns gorm.ErrRecordNotFound when the id is absent.
func (s *RecordStore) Update(providerID, id uuid.UUID, p RecordPatch) (models.ServiceRecord, error) {
	var record models.ServiceRecord
	if err := s.db.Where("provider_id = ? AND id = ?", providerID, id).
		First(&record).Error; err != nil {
		return models.ServiceRecord{}, err
	}

	if p.ClientName != nil {
		record.ClientName = *p.ClientName
	}
	if p.ClientPhone != nil {
		record.ClientPhone = *p.ClientPhone
	}
	if p.Address != nil {
		record.Address = *p.Address
	}
	if p.ServiceDescription != nil {
		record.ServiceDescription = *p.ServiceDescription
	}
	if p.TotalValue != nil {
		record.TotalValue = *p.TotalValue
	}
	if p.Date != nil {
		record.Date = *p.Date
		record.DateKey = utils.DateKey(*p.Date)
	}
	if p.StartTime != nil {
		record.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		record.EndTime = *p.EndTime
	}

	if err := s.db.Save(&record).Error; err != nil {
		return models.ServiceRecord{}, err
	}
	return record, nil
}

// Remove deletes the record. Removing an id that does not exist is a no-op,
// not an error.
func (s *RecordStore) Remove(providerID, id uuid.UUID) error {
	return s.db.Where("provider_id = ? AND id = ?", providerID, id).
		Delete(&models.ServiceRecord{}).Error
}

// FindByID looks up a single record. Returns gorm.ErrRecordNotFound when absent.
func (s *RecordStore) FindByID(providerID, id uuid.UUID) (models.ServiceRecord, error) {
	var record models.ServiceRecord
	err := s.db.Where("provider_id = ? AND id = ?", providerID, id).
		First(&record).Error
	return record, err
}
