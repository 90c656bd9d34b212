package controllers

import (
	"jobtrack-backend/models"
	"jobtrack-backend/services"
	"jobtrack-backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TodayJobs      []models.ServiceRecord `json:"todayJobs"`
	MonthlyRevenue float64                `json:"monthlyRevenue"`
	TotalRecords   int                    `json:"totalRecords"`
	NextJob        *models.ServiceRecord  `json:"nextJob"`
}

// GetDashboardOverview returns the provider's home screen data: today's
// jobs, this month's earnings and the next upcoming visit.
func GetDashboardOverview(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	store := recordStore()
	// Date keys are UTC, so the clock must come from the same UTC instant
	now := time.Now().UTC()
	today := utils.DateKey(now)

	todayJobs, err := store.ListByDate(providerUUID, today)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve today's jobs")
		return
	}

	records, err := store.List(providerUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	currentMonth := utils.MonthKey(today)
	var monthlyRevenue float64
	for _, b := range services.MonthlyBuckets(records) {
		if b.Month == currentMonth {
			monthlyRevenue = b.Total
			break
		}
	}

	overview := DashboardOverview{
		TodayJobs:      todayJobs,
		MonthlyRevenue: monthlyRevenue,
		TotalRecords:   len(records),
		NextJob:        nextUpcomingJob(records, today, now.Format("15:04")),
	}

	c.JSON(http.StatusOK, overview)
}

// nextUpcomingJob finds the earliest record that has not finished yet:
// today's jobs still running or ahead of the clock, then future dates.
func nextUpcomingJob(records []models.ServiceRecord, today, clock string) *models.ServiceRecord {
	var next *models.ServiceRecord
	for i := range records {
		r := &records[i]
		if r.DateKey < today {
			continue
		}
		if r.DateKey == today && r.EndTime <= clock {
			continue
		}
		if next == nil ||
			r.DateKey < next.DateKey ||
			(r.DateKey == next.DateKey && r.StartTime < next.StartTime) {
			next = r
		}
	}
	return next
}
