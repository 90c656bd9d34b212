// controllers/report.go
package controllers

import (
	"jobtrack-backend/models"
	"jobtrack-backend/services"
	"jobtrack-backend/utils"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// FinancialReport is one month of earnings: the bucket total, its records
// sorted by date, the description breakdown for the chart, and the keys of
// the neighboring populated months for previous/next navigation.
type FinancialReport struct {
	Month          string                      `json:"month"`
	Total          float64                     `json:"total"`
	TotalFormatted string                      `json:"totalFormatted"`
	PreviousMonth  *string                     `json:"previousMonth"`
	NextMonth      *string                     `json:"nextMonth"`
	Months         []string                    `json:"months"`
	Records        []models.ServiceRecord      `json:"records"`
	Breakdown      []services.DescriptionShare `json:"breakdown"`

	AllTimeTotal          float64 `json:"allTimeTotal"`
	AllTimeTotalFormatted string  `json:"allTimeTotalFormatted"`
}

// GetFinancialReport aggregates the provider's records by calendar month.
// ?month=YYYY-MM selects a populated month; otherwise the current month is
// shown when it has data, else the most recent month that does.
func GetFinancialReport(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	records, err := recordStore().List(providerUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	buckets := services.MonthlyBuckets(records)
	selected := services.SelectMonth(buckets, c.Query("month"), time.Now())

	months := make([]string, len(buckets))
	for i, b := range buckets {
		months[i] = b.Month
	}

	report := FinancialReport{
		Months:       months,
		Records:      []models.ServiceRecord{},
		Breakdown:    []services.DescriptionShare{},
		AllTimeTotal: services.GrandTotal(buckets),
	}
	report.TotalFormatted = utils.FormatAmount(report.Total)
	report.AllTimeTotalFormatted = utils.FormatAmount(report.AllTimeTotal)

	if selected < 0 {
		// No recorded services at all
		c.JSON(http.StatusOK, report)
		return
	}

	bucket := buckets[selected]
	report.Month = bucket.Month
	report.Total = bucket.Total
	report.TotalFormatted = utils.FormatAmount(bucket.Total)
	report.Breakdown = services.Breakdown(bucket.Records)

	// Buckets are newest-first: "previous" is the next-older month
	if selected+1 < len(buckets) {
		report.PreviousMonth = &buckets[selected+1].Month
	}
	if selected > 0 {
		report.NextMonth = &buckets[selected-1].Month
	}

	report.Records = append(report.Records, bucket.Records...)
	sort.SliceStable(report.Records, func(a, b int) bool {
		return report.Records[a].Date.Before(report.Records[b].Date)
	})

	c.JSON(http.StatusOK, report)
}
