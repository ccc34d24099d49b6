// connection.go
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

package database

import (
	"fmt"
	"log"

	"github.com/fieldscope/inspection-worker/internal/config"
	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the embedded store. The driver is pure Go so the worker
// binary builds and runs anywhere the app does, with no external database
// process.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	// The worker is the only writer; a single connection sidesteps
	// SQLITE_BUSY under interleaved requests.
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Opened local store: %s", cfg.DBPath)

	return db, nil
}

// AutoMigrate runs automatic migrations for all collections. Migrations
// are additive; an incompatible schema surfaces as an error here rather
// than silently dropping data.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SyncState{},
		&models.Job{},
		&models.ReportItem{},
		&models.DeletedItem{},
		&models.LibraryItem{},
		&models.Category{},
		&models.Note{},
		&models.Recommendation{},
		&models.PreviousReport{},
	)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
