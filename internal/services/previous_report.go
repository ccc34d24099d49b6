package services

import (
	"encoding/json"
	"errors"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetPreviousReport returns the cached previous-report snapshot for a
// job. A cache miss is a branchable error so the caller knows to fall
// back to a remote fetch.
func GetPreviousReport(db *gorm.DB, jobNumber string) (json.RawMessage, error) {
	var cached models.PreviousReport
	if err := db.First(&cached, "job_number = ?", jobNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotCached
		}
		return nil, err
	}

	// Re-attach the cache key so the response round-trips whatever the
	// origin returned plus the job it was cached under.
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cached.Payload.JSON), &payload); err != nil {
		return nil, err
	}
	payload["job_number"] = cached.JobNumber
	return json.Marshal(payload)
}

// SetPreviousReport stores whatever the remote fetch returned, keyed by
// the current job.
func SetPreviousReport(db *gorm.DB, jobNumber string, body json.RawMessage) error {
	var meta struct {
		CustomerID string `json:"customer_id"`
	}
	// customer_id is optional metadata on the snapshot; ignore shape errors
	_ = json.Unmarshal(body, &meta)

	cached := models.PreviousReport{
		JobNumber:  jobNumber,
		CustomerID: meta.CustomerID,
		Payload:    models.JSON{JSON: datatypes.JSON(body)},
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cached).Error
}
