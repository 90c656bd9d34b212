// controllers/calendar.go
package controllers

import (
	"jobtrack-backend/utils"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

type CalendarDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// GetCalendar returns which dates of a month carry scheduled jobs, with a
// per-day count, so the client can mark its calendar view. Defaults to the
// current month when ?month=YYYY-MM is omitted.
func GetCalendar(c *gin.Context) {
	providerUUID, ok := providerFromContext(c)
	if !ok {
		return
	}

	month := c.Query("month")
	if month == "" {
		month = utils.MonthKey(utils.DateKey(time.Now()))
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	records, err := recordStore().ListByMonth(providerUUID, month)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	counts := make(map[string]int)
	for _, r := range records {
		counts[r.DateKey]++
	}

	days := make([]CalendarDay, 0, len(counts))
	for date, count := range counts {
		days = append(days, CalendarDay{Date: date, Count: count})
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Date < days[b].Date })

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"days":  days,
	})
}
