// services/conflict_checker.go
package services

import (
	"jobtrack-backend/models"
	"jobtrack-backend/utils"

	"github.com/google/uuid"
)

// ConflictChecker decides whether a candidate time window collides with
// records already scheduled on the same calendar date.
type ConflictChecker struct {
	store *RecordStore
}

func NewConflictChecker(store *RecordStore) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// FindConflicts returns every record of the provider on dateKey whose
// [start, end) window intersects [startMin, endMin), in insertion order.
// excludeID skips the record being edited so it never conflicts with itself;
// pass uuid.Nil when creating. A storage read error propagates to the caller
// and blocks the write rather than silently reporting "no conflict".
func (cc *ConflictChecker) FindConflicts(providerID uuid.UUID, dateKey string, startMin, endMin int, excludeID uuid.UUID) ([]models.ServiceRecord, error) {
	records, err := cc.store.ListByDate(providerID, dateKey)
	if err != nil {
		return nil, err
	}

	var conflicts []models.ServiceRecord
	for _, r := range records {
		if r.ID == excludeID {
			continue
		}
		s, err := utils.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		e, err := utils.ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		if utils.Overlaps(startMin, endMin, s, e) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts, nil
}
