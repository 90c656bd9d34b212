package services

import (
	"jobtrack-backend/models"
	"jobtrack-backend/utils"
	"math"
	"testing"
	"time"
)

func record(dateKey, description, value string) models.ServiceRecord {
	date, _ := time.Parse("2006-01-02", dateKey)
	return models.ServiceRecord{
		ClientName:         "Cliente",
		ServiceDescription: description,
		TotalValue:         value,
		Date:               date,
		DateKey:            dateKey,
		StartTime:          "09:00",
		EndTime:            "10:00",
	}
}

func TestMonthlyBuckets(t *testing.T) {
	records := []models.ServiceRecord{
		record("2024-03-10", "Pintura", "R$ 100,00"),
		record("2024-01-05", "Elétrica", "R$ 200,00"),
		record("2024-03-22", "Pintura", "R$ 50,50"),
		record("2023-12-01", "Hidráulica", "R$ 75,00"),
	}

	buckets := MonthlyBuckets(records)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}

	// Newest first
	wantOrder := []string{"2024-03", "2024-01", "2023-12"}
	for i, want := range wantOrder {
		if buckets[i].Month != want {
			t.Errorf("bucket %d = %s, want %s", i, buckets[i].Month, want)
		}
	}

	if math.Abs(buckets[0].Total-150.50) > 1e-9 {
		t.Errorf("2024-03 total = %v, want 150.50", buckets[0].Total)
	}
	if len(buckets[0].Records) != 2 {
		t.Errorf("2024-03 should hold 2 records, got %d", len(buckets[0].Records))
	}
}

func TestMonthlyBucketsFailSoftParsing(t *testing.T) {
	records := []models.ServiceRecord{
		record("2024-03-10", "Pintura", "R$ 100,00"),
		record("2024-03-11", "Pintura", "not money"),
	}

	buckets := MonthlyBuckets(records)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Total != 100 {
		t.Errorf("unparsable value must contribute 0, total = %v", buckets[0].Total)
	}
	if len(buckets[0].Records) != 2 {
		t.Errorf("unparsable record still belongs to the bucket, got %d records", len(buckets[0].Records))
	}
}

func TestGrandTotalMatchesRecordSum(t *testing.T) {
	records := []models.ServiceRecord{
		record("2024-03-10", "a", "R$ 100,00"),
		record("2024-02-02", "b", "R$ 50,50"),
		record("2023-11-20", "c", "R$ 9,99"),
		record("2024-03-15", "d", "garbage"),
	}

	var want float64
	for _, r := range records {
		want += utils.ParseAmount(r.TotalValue)
	}

	got := GrandTotal(MonthlyBuckets(records))
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("GrandTotal = %v, want %v", got, want)
	}
}

func TestSelectMonth(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	buckets := MonthlyBuckets([]models.ServiceRecord{
		record("2024-04-01", "a", "R$ 10,00"),
		record("2024-03-10", "b", "R$ 10,00"),
		record("2024-01-05", "c", "R$ 10,00"),
	})

	t.Run("explicit month", func(t *testing.T) {
		if i := SelectMonth(buckets, "2024-01", now); buckets[i].Month != "2024-01" {
			t.Errorf("selected %s, want 2024-01", buckets[i].Month)
		}
	})

	t.Run("defaults to current month", func(t *testing.T) {
		if i := SelectMonth(buckets, "", now); buckets[i].Month != "2024-03" {
			t.Errorf("selected %s, want 2024-03", buckets[i].Month)
		}
	})

	t.Run("unknown month falls back to current", func(t *testing.T) {
		if i := SelectMonth(buckets, "2022-06", now); buckets[i].Month != "2024-03" {
			t.Errorf("selected %s, want 2024-03", buckets[i].Month)
		}
	})

	t.Run("no current month falls back to newest", func(t *testing.T) {
		later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		if i := SelectMonth(buckets, "", later); buckets[i].Month != "2024-04" {
			t.Errorf("selected %s, want 2024-04", buckets[i].Month)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if i := SelectMonth(nil, "", now); i != -1 {
			t.Errorf("SelectMonth(nil) = %d, want -1", i)
		}
	})
}

func TestBreakdown(t *testing.T) {
	shares := Breakdown([]models.ServiceRecord{
		record("2024-03-10", "Pintura", "R$ 100,00"),
		record("2024-03-11", "Elétrica", "R$ 300,00"),
		record("2024-03-12", "Pintura", "R$ 50,00"),
		record("2024-03-13", "", "R$ 25,00"),
	})

	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	if shares[0].Description != "Elétrica" || shares[0].Total != 300 {
		t.Errorf("largest share first, got %+v", shares[0])
	}
	if shares[1].Description != "Pintura" || shares[1].Total != 150 {
		t.Errorf("grouped share = %+v, want Pintura 150", shares[1])
	}
	if shares[2].Description != "Outros" || shares[2].Total != 25 {
		t.Errorf("blank description groups as Outros, got %+v", shares[2])
	}
}
