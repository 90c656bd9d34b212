package services

import (
	"errors"
	"jobtrack-backend/models"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "jobtrack.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.ServiceRecord{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewRecordStore(db)
}

func testFields(dateKey, start, end string) RecordFields {
	date, _ := time.Parse("2006-01-02", dateKey)
	return RecordFields{
		ClientName:         "João Silva",
		ClientPhone:        "+5511999990000",
		Address:            "Rua das Flores, 123",
		ServiceDescription: "Pintura",
		TotalValue:         "R$ 150,00",
		Date:               date,
		StartTime:          start,
		EndTime:            end,
	}
}

func TestRecordStoreAddAndList(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	added, err := store.Add(provider, testFields("2024-03-10", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == uuid.Nil {
		t.Error("Add must assign an id")
	}
	if added.CreatedAt.IsZero() {
		t.Error("Add must assign a creation timestamp")
	}
	if added.DateKey != "2024-03-10" {
		t.Errorf("DateKey = %q, want 2024-03-10", added.DateKey)
	}

	records, err := store.List(provider)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.ID != added.ID ||
		got.ClientName != "João Silva" ||
		got.ClientPhone != "+5511999990000" ||
		got.Address != "Rua das Flores, 123" ||
		got.ServiceDescription != "Pintura" ||
		got.TotalValue != "R$ 150,00" ||
		got.StartTime != "09:00" ||
		got.EndTime != "10:00" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestRecordStoreListInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	var ids []uuid.UUID
	for _, day := range []string{"2024-03-12", "2024-03-10", "2024-03-11"} {
		r, err := store.Add(provider, testFields(day, "09:00", "10:00"))
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids = append(ids, r.ID)
		time.Sleep(time.Millisecond)
	}

	records, err := store.List(provider)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List returned %d records, want 3", len(records))
	}
	for i, r := range records {
		if r.ID != ids[i] {
			t.Errorf("record %d out of insertion order", i)
		}
	}
}

func TestRecordStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	added, err := store.Add(provider, testFields("2024-03-10", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	before, err := store.FindByID(provider, added.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}

	newValue := "R$ 200,00"
	updated, err := store.Update(provider, added.ID, RecordPatch{TotalValue: &newValue})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.TotalValue != newValue {
		t.Errorf("TotalValue = %q, want %q", updated.TotalValue, newValue)
	}
	// Everything else stays untouched
	if updated.ID != before.ID ||
		updated.ClientName != before.ClientName ||
		updated.ClientPhone != before.ClientPhone ||
		updated.Address != before.Address ||
		updated.ServiceDescription != before.ServiceDescription ||
		updated.StartTime != before.StartTime ||
		updated.EndTime != before.EndTime ||
		updated.DateKey != before.DateKey {
		t.Errorf("Update changed unrelated fields: %+v", updated)
	}
	reloaded, err := store.FindByID(provider, added.ID)
	if err != nil {
		t.Fatalf("FindByID after update failed: %v", err)
	}
	if !reloaded.CreatedAt.Equal(before.CreatedAt) {
		t.Error("Update must preserve CreatedAt")
	}
}

func TestRecordStoreUpdateMovesDateKey(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	added, err := store.Add(provider, testFields("2024-03-10", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	newDate := time.Date(2024, 4, 2, 15, 0, 0, 0, time.UTC)
	updated, err := store.Update(provider, added.ID, RecordPatch{Date: &newDate})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.DateKey != "2024-04-02" {
		t.Errorf("DateKey = %q, want 2024-04-02", updated.DateKey)
	}
}

func TestRecordStoreUpdateNotFound(t *testing.T) {
	store := newTestStore(t)

	name := "x"
	_, err := store.Update(uuid.New(), uuid.New(), RecordPatch{ClientName: &name})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Update of missing id must return gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestRecordStoreRemove(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	added, err := store.Add(provider, testFields("2024-03-10", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Remove(provider, added.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := store.FindByID(provider, added.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindByID after Remove must return gorm.ErrRecordNotFound, got %v", err)
	}

	// Removing an absent id is a no-op, not an error
	if err := store.Remove(provider, uuid.New()); err != nil {
		t.Errorf("Remove of missing id must be a no-op, got %v", err)
	}
}

func TestRecordStoreProviderScoping(t *testing.T) {
	store := newTestStore(t)
	alice := uuid.New()
	bob := uuid.New()

	added, err := store.Add(alice, testFields("2024-03-10", "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	records, err := store.List(bob)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("bob sees alice's records: %d", len(records))
	}
	if _, err := store.FindByID(bob, added.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("cross-provider FindByID must miss, got %v", err)
	}
}

func TestRecordStoreListByDateAndMonth(t *testing.T) {
	store := newTestStore(t)
	provider := uuid.New()

	for _, day := range []string{"2024-03-10", "2024-03-10", "2024-03-25", "2024-04-01"} {
		if _, err := store.Add(provider, testFields(day, "09:00", "10:00")); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	sameDay, err := store.ListByDate(provider, "2024-03-10")
	if err != nil {
		t.Fatalf("ListByDate failed: %v", err)
	}
	if len(sameDay) != 2 {
		t.Errorf("ListByDate returned %d records, want 2", len(sameDay))
	}

	march, err := store.ListByMonth(provider, "2024-03")
	if err != nil {
		t.Fatalf("ListByMonth failed: %v", err)
	}
	if len(march) != 3 {
		t.Errorf("ListByMonth returned %d records, want 3", len(march))
	}
}
