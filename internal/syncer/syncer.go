// syncer.go
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

// Package syncer reconciles the local store with the origin API. Every
// phase is idempotent and advances its watermark only on success, so a
// failed phase simply retries the same delta on the next trigger.
package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fieldscope/inspection-worker/internal/config"
	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/fieldscope/inspection-worker/internal/remote"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"gorm.io/gorm"
)

// ErrOffline is returned when the origin cannot be reached.
var ErrOffline = errors.New("No Internet Connection")

// Syncer runs the pull, push, and retention phases against the origin.
type Syncer struct {
	db     *gorm.DB
	client *remote.Client
	origin string
	now    func() time.Time
}

// New builds a Syncer.
func New(cfg *config.Config, db *gorm.DB, client *remote.Client) *Syncer {
	return &Syncer{
		db:     db,
		client: client,
		origin: cfg.OriginURL,
		now:    time.Now,
	}
}

func (s *Syncer) online() bool {
	return utils.PingOrigin(s.origin) == nil
}

// syncState loads the watermark row. A missing row means the store was
// never seeded; sync has nothing to do.
func (s *Syncer) syncState() (*models.SyncState, error) {
	var state models.SyncState
	if err := s.db.First(&state, "type = ?", models.SyncStateRecordKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// SyncJobs pulls the upcoming job list from the origin: local jobs still
// Not Started are superseded by the fresh list, while jobs the inspector
// has already touched are preserved untouched. It then runs the library
// delta pull and the retention sweep; failures in those phases are
// logged and do not fail the pull.
func (s *Syncer) SyncJobs(ctx context.Context) error {
	if !s.online() {
		return ErrOffline
	}

	raw, err := s.client.Get(ctx, "/jobs")
	if err != nil {
		return err
	}

	var fetched []models.Job
	if err := json.Unmarshal(raw, &fetched); err != nil {
		return fmt.Errorf("unexpected jobs payload: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status = ?", models.JobStatusNotStarted).
			Delete(&models.Job{}).Error; err != nil {
			return err
		}
		for i := range fetched {
			job := fetched[i]
			var existing models.Job
			err := tx.First(&existing, "job_number = ?", job.JobNumber).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&job).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.syncLibrary(ctx); err != nil {
		log.Printf("Library delta sync failed: %v", err)
	}
	if err := s.clearSync(); err != nil {
		log.Printf("Retention sweep failed: %v", err)
	}

	return nil
}
