// services/finance.go
package services

import (
	"jobtrack-backend/models"
	"jobtrack-backend/utils"
	"sort"
	"time"
)

// MonthBucket is all records sharing one calendar month plus their summed
// value. Only months that actually contain records are ever materialized.
type MonthBucket struct {
	Month   string                 `json:"month"` // "YYYY-MM"
	Total   float64                `json:"total"`
	Records []models.ServiceRecord `json:"records"`
}

// DescriptionShare is one slice of the per-month breakdown: the summed value
// of every record sharing a service description.
type DescriptionShare struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
}

// MonthlyBuckets groups records by calendar month, newest month first.
// Record order inside a bucket is the order they were handed in. Values are
// parsed fail-soft: a record whose TotalValue cannot be read adds 0.
func MonthlyBuckets(records []models.ServiceRecord) []MonthBucket {
	index := make(map[string]int)
	var buckets []MonthBucket

	for _, r := range records {
		month := utils.MonthKey(r.DateKey)
		i, ok := index[month]
		if !ok {
			i = len(buckets)
			index[month] = i
			buckets = append(buckets, MonthBucket{Month: month})
		}
		buckets[i].Total += utils.ParseAmount(r.TotalValue)
		buckets[i].Records = append(buckets[i].Records, r)
	}

	// "YYYY-MM" sorts chronologically as a plain string
	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Month > buckets[b].Month
	})
	return buckets
}

// GrandTotal sums every bucket, i.e. every parsed record value.
func GrandTotal(buckets []MonthBucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Total
	}
	return total
}

// SelectMonth picks the bucket to show: the requested month when populated,
// otherwise the current calendar month, otherwise the newest bucket.
// Returns -1 when there are no buckets at all.
func SelectMonth(buckets []MonthBucket, month string, now time.Time) int {
	if len(buckets) == 0 {
		return -1
	}
	if month != "" {
		for i, b := range buckets {
			if b.Month == month {
				return i
			}
		}
	}
	current := utils.MonthKey(utils.DateKey(now))
	for i, b := range buckets {
		if b.Month == current {
			return i
		}
	}
	return 0
}

// Breakdown groups records by service description and sums each group,
// largest first, for the report's proportional chart. Records without a
// description fall into "Outros".
func Breakdown(records []models.ServiceRecord) []DescriptionShare {
	totals := make(map[string]float64)
	var order []string

	for _, r := range records {
		desc := r.ServiceDescription
		if desc == "" {
			desc = "Outros"
		}
		if _, ok := totals[desc]; !ok {
			order = append(order, desc)
		}
		totals[desc] += utils.ParseAmount(r.TotalValue)
	}

	shares := make([]DescriptionShare, 0, len(order))
	for _, desc := range order {
		shares = append(shares, DescriptionShare{Description: desc, Total: totals[desc]})
	}
	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].Total > shares[b].Total
	})
	return shares
}
