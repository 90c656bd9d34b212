// controllers/service_record.go
package controllers

import (
	"errors"
	"jobtrack-backend/config"
	"jobtrack-backend/models"
	"jobtrack-backend/services"
	"jobtrack-backend/utils"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceRecordInput defines the expected JSON structure for scheduling a job
type CreateServiceRecordInput struct {
	ClientName         string `json:"clientName" binding:"required"`
	ClientPhone        string `json:"clientPhone" binding:"required"`
	Address            string `json:"address" binding:"required"`
	ServiceDescription string `json:"serviceDescription" binding:"required"`
	TotalValue         string `json:"totalValue" binding:"required"`
	Date               string `json:"date" binding:"required"`
	StartTime          string `json:"startTime" binding:"required"`
	EndTime            string `json:"endTime" binding:"required"`

	// When true, an overlapping window is scheduled anyway. The client asks
	// the user first.
	IgnoreConflicts bool `json:"ignoreConflicts"`
}

// UpdateServiceRecordInput defines the expected JSON structure for editing a job
type UpdateServiceRecordInput struct {
	ClientName         *string `json:"clientName"`
	ClientPhone        *string `json:"clientPhone"`
	Address            *string `json:"address"`
	ServiceDescription *string `json:"serviceDescription"`
	TotalValue         *string `json:"totalValue"`
	Date               *string `json:"date"`
	StartTime          *string `json:"startTime"`
	EndTime            *string `json:"endTime"`

	IgnoreConflicts bool `json:"ignoreConflicts"`
}

func recordStore() *services.RecordStore {
	return services.NewRecordStore(config.DB)
}

func providerFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	id, ok := userID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID in context")
		return uuid.Nil, false
	}

	providerUUID, err := uuid.Parse(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return providerUUID, true
}

// CreateServiceRecord schedules a new job after validating its time window
// against everything already on that date
func CreateServiceRecord(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.ClientPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client phone number format")
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	start, end, err := utils.ValidateWindow(input.StartTime, input.EndTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	store := recordStore()
	checker := services.NewConflictChecker(store)
	conflicts, err := checker.FindConflicts(providerUUID, utils.DateKey(date), start, end, uuid.Nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check schedule conflicts")
		return
	}
	if len(conflicts) > 0 && !input.IgnoreConflicts {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Time window conflicts with already scheduled services",
			"conflicts": conflicts,
		})
		return
	}

	record, err := store.Add(providerUUID, services.RecordFields{
		ClientName:         input.ClientName,
		ClientPhone:        input.ClientPhone,
		Address:            input.Address,
		ServiceDescription: input.ServiceDescription,
		TotalValue:         input.TotalValue,
		Date:               date,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetServiceRecords lists the provider's jobs, optionally filtered to one
// calendar date (?date=YYYY-MM-DD) and/or a search term (?q=)
func GetServiceRecords(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	store := recordStore()
	var records []models.ServiceRecord
	var err error

	if date := c.Query("date"); date != "" {
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		records, err = store.ListByDate(providerUUID, date)
	} else {
		records, err = store.List(providerUUID)
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		records = filterRecords(records, q)
	}

	c.JSON(http.StatusOK, records)
}

// filterRecords keeps records whose client name, description or address
// contains the term, case-insensitively
func filterRecords(records []models.ServiceRecord, term string) []models.ServiceRecord {
	term = strings.ToLower(term)
	filtered := make([]models.ServiceRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.ClientName), term) ||
			strings.Contains(strings.ToLower(r.ServiceDescription), term) ||
			strings.Contains(strings.ToLower(r.Address), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// GetServiceRecord retrieves a specific job by ID
func GetServiceRecord(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	record, err := recordStore().FindByID(providerUUID, recordUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateServiceRecord edits an existing job. The record being edited is
// excluded from the conflict check so it never collides with itself.
func UpdateServiceRecord(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	var input UpdateServiceRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ClientPhone != nil && !utils.ValidatePhone(*input.ClientPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client phone number format")
		return
	}

	store := recordStore()
	existing, err := store.FindByID(providerUUID, recordUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// The effective window after the patch is what gets validated
	date := existing.Date
	if input.Date != nil {
		date, err = utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	startTime := existing.StartTime
	if input.StartTime != nil {
		startTime = *input.StartTime
	}
	endTime := existing.EndTime
	if input.EndTime != nil {
		endTime = *input.EndTime
	}

	start, end, err := utils.ValidateWindow(startTime, endTime)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	checker := services.NewConflictChecker(store)
	conflicts, err := checker.FindConflicts(providerUUID, utils.DateKey(date), start, end, recordUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check schedule conflicts")
		return
	}
	if len(conflicts) > 0 && !input.IgnoreConflicts {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Time window conflicts with already scheduled services",
			"conflicts": conflicts,
		})
		return
	}

	patch := services.RecordPatch{
		ClientName:         input.ClientName,
		ClientPhone:        input.ClientPhone,
		Address:            input.Address,
		ServiceDescription: input.ServiceDescription,
		TotalValue:         input.TotalValue,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
	}
	if input.Date != nil {
		patch.Date = &date
	}

	record, err := store.Update(providerUUID, recordUUID, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service record")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteServiceRecord removes a job. Deleting an id that no longer exists is
// a no-op, not an error.
func DeleteServiceRecord(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	if err := recordStore().Remove(providerUUID, recordUUID); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service record")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service record deleted successfully"})
}
