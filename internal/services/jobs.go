// jobs.go
//
// Offline-first local data and sync worker for the FieldScope inspection app
// Copyright (c) 2026 FieldScope Software
//
// This file is part of inspection-worker.
// inspection-worker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// inspection-worker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with inspection-worker.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
)

// JobDetail is a job enriched with derived report item counts.
type JobDetail struct {
	models.Job
	NewReportItems      int64 `json:"newReportItems"`
	PreviousReportItems int64 `json:"previousReportItems"`
}

// JobPatch is a partial-field merge update for a job. Nil fields are
// left untouched. A JSON null decodes to the same nil pointer as an
// absent field, so a merge update cannot blank a field; clearing the
// recommendation goes through ClearRecommendation instead.
type JobPatch struct {
	Status         *string            `json:"status"`
	ReportID       *string            `json:"report_id"`
	Recommendation *string            `json:"recommendation"`
	Notes          *models.StringList `json:"notes"`
	SyncStatus     *models.SyncStatus `json:"sync_status"`
}

// ListJobs returns all jobs ordered by start time ascending.
func ListJobs(db *gorm.DB) ([]models.Job, error) {
	var jobs []models.Job
	if err := db.Order("starts_at ASC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJobDetail resolves a job and counts its new and carried-over report
// items in one transaction. A job with no report yet reports zero counts
// without querying items.
func GetJobDetail(db *gorm.DB, jobNumber string) (*JobDetail, error) {
	var detail JobDetail

	err := db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "job_number = ?", jobNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		detail.Job = job

		if job.ReportID == "" {
			return nil
		}

		if err := tx.Model(&models.ReportItem{}).
			Where("report_id = ? AND previous_item = 0", job.ReportID).
			Count(&detail.NewReportItems).Error; err != nil {
			return err
		}
		return tx.Model(&models.ReportItem{}).
			Where("report_id = ? AND previous_item = 1", job.ReportID).
			Count(&detail.PreviousReportItems).Error
	})
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// UpdateJob applies a partial merge update keyed by job number. Zero
// affected rows means the job does not exist.
func UpdateJob(db *gorm.DB, jobNumber string, patch JobPatch) error {
	fields := map[string]interface{}{}
	if patch.Status != nil {
		fields["status"] = *patch.Status
	}
	if patch.ReportID != nil {
		fields["report_id"] = *patch.ReportID
	}
	if patch.Recommendation != nil {
		fields["recommendation"] = *patch.Recommendation
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.SyncStatus != nil {
		fields["sync_status"] = *patch.SyncStatus
	}
	if len(fields) == 0 {
		// Nothing to merge; still report whether the job exists.
		var count int64
		if err := db.Model(&models.Job{}).Where("job_number = ?", jobNumber).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return nil
	}

	res := db.Model(&models.Job{}).Where("job_number = ?", jobNumber).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearRecommendation removes a job's recommendation.
func ClearRecommendation(db *gorm.DB, jobNumber string) error {
	res := db.Model(&models.Job{}).Where("job_number = ?", jobNumber).
		Update("recommendation", "")
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddJobNote appends a note to a job's note list. An exact duplicate is
// rejected rather than appended twice.
func AddJobNote(db *gorm.DB, jobNumber, note string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "job_number = ?", jobNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if job.Notes.Contains(note) {
			return ErrDuplicateNote
		}

		notes := append(job.Notes, note)
		return tx.Model(&models.Job{}).Where("job_number = ?", jobNumber).
			Update("notes", notes).Error
	})
}

// DeleteJobNote removes a note from a job's note list by exact match.
func DeleteJobNote(db *gorm.DB, jobNumber, note string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "job_number = ?", jobNumber).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		notes := make(models.StringList, 0, len(job.Notes))
		for _, n := range job.Notes {
			if n != note {
				notes = append(notes, n)
			}
		}
		return tx.Model(&models.Job{}).Where("job_number = ?", jobNumber).
			Update("notes", notes).Error
	})
}
