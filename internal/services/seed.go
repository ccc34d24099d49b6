// seed.go
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
	"time"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
)

// ReplaceCollection clears a collection and bulk-inserts the payload,
// atomically. Used once per login session to seed the local store.
func ReplaceCollection[T any](db *gorm.DB, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(new(T)).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

// InitUser replaces the session singleton and, on the very first install,
// creates the sync watermark row.
func InitUser(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return err
		}
		user.Type = models.UserRecordKey
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		now := time.Now()
		state := models.SyncState{
			Type:            models.SyncStateRecordKey,
			LastSync:        now,
			LastSyncLibrary: now,
			ClearSync:       now,
		}
		return tx.Where(models.SyncState{Type: models.SyncStateRecordKey}).
			FirstOrCreate(&state).Error
	})
}
