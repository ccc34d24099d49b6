// inspection.go
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

package models

import (
	"time"

	"github.com/fieldscope/inspection-worker/internal/types"
)

// Job lifecycle states.
const (
	JobStatusNotStarted = "Not Started"
	JobStatusInProgress = "In Progress"
	JobStatusCompleted  = "Completed"
)

// SyncStatus tracks whether a locally written record has been confirmed
// by the origin server. The transition is pending -> confirmed, once,
// and never reverts.
type SyncStatus string

const (
	SyncPending   SyncStatus = "pending"
	SyncConfirmed SyncStatus = "confirmed"
)

// Fixed keys for the singleton rows.
const (
	UserRecordKey      = "user"
	SyncStateRecordKey = "sync"
)

// User is the single cached login session. Exactly one row exists while
// a session is live; it is cleared on logout or a 401 from the origin.
type User struct {
	Type        string `gorm:"primaryKey;size:16" json:"type"`
	AccessToken string `json:"access_token"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

func (User) TableName() string { return "users" }

// SyncState is the single row holding the three sync watermarks. Each is
// advanced only after its phase completes successfully.
type SyncState struct {
	Type            string    `gorm:"primaryKey;size:16" json:"type"`
	LastSync        time.Time `json:"last_sync"`
	LastSyncLibrary time.Time `json:"last_sync_library"`
	ClearSync       time.Time `json:"clear_sync"`
}

func (SyncState) TableName() string { return "sync_state" }

// Customer is a denormalized blob on the job, stored as JSON.
type Customer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	NameOnReport string `json:"name_on_report"`
}

// Job is one scheduled inspection, keyed by the external job number.
type Job struct {
	JobNumber      string     `gorm:"primaryKey;size:64" json:"job_number"`
	ID             string     `gorm:"index;size:64" json:"id"`
	Status         string     `gorm:"index;size:32" json:"status"`
	ReportID       string     `gorm:"size:64" json:"report_id"`
	Type           string     `gorm:"size:64" json:"type"`
	Category       string     `gorm:"size:128" json:"category"`
	SiteAddress    string     `json:"site_address"`
	StartsAt       time.Time  `gorm:"index" json:"starts_at"`
	Notes          StringList `json:"notes"`
	Recommendation string     `json:"recommendation"`
	Customer       Customer   `gorm:"serializer:json" json:"customer"`
	SyncStatus     SyncStatus `gorm:"size:16" json:"sync_status"`
}

func (Job) TableName() string { return "jobs" }

// ReportItem is one inspection finding, either newly authored or carried
// over from the customer's previous report (previous_item=1).
//
// Summary and EmbeddedImages are not persisted; they are backfilled from
// the originating library item on single-item reads.
type ReportItem struct {
	ID                   string           `gorm:"primaryKey;size:64" json:"id"`
	ItemID               string           `gorm:"size:64" json:"item_id,omitempty"`
	ReportID             string           `gorm:"index;index:idx_report_items_scope,priority:1;size:64" json:"report_id"`
	Category             string           `gorm:"index:idx_report_items_scope,priority:3;size:128" json:"category"`
	Name                 string           `json:"name"`
	Images               JSON             `json:"images"`
	Note                 string           `json:"note"`
	PreviousItem         types.FlexUint64 `gorm:"index:idx_report_items_scope,priority:2" json:"previous_item"`
	PreviousReportItemID string           `gorm:"size:64" json:"previous_report_item_id,omitempty"`
	SyncStatus           SyncStatus       `gorm:"index;size:16" json:"sync_status"`
	CreatedAt            time.Time        `gorm:"index" json:"created_at"`

	Summary        string `gorm:"-" json:"summary,omitempty"`
	EmbeddedImages JSON   `gorm:"-" json:"embedded_images,omitempty"`
}

func (ReportItem) TableName() string { return "report_items" }

// DeletedItem is a tombstone for a removed report item, cleared in bulk
// once a push sync confirms the deletion reached the origin.
type DeletedItem struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`
}

func (DeletedItem) TableName() string { return "deleted_items" }

// LibraryItem is server-issued reference data for authoring findings.
// Category name/id are denormalized and refreshed when a category delta
// arrives.
type LibraryItem struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	Name           string `json:"name"`
	Category       string `gorm:"size:128" json:"category"`
	CategoryID     string `gorm:"index;size:64" json:"category_id"`
	Summary        string `json:"summary"`
	EmbeddedImages JSON   `json:"embedded_images"`
}

func (LibraryItem) TableName() string { return "library_items" }

// Category is a library item grouping.
type Category struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Name string `gorm:"size:128" json:"name"`
}

func (Category) TableName() string { return "categories" }

// Note is a reusable library note.
type Note struct {
	ID   string `gorm:"primaryKey;size:64" json:"id"`
	Note string `json:"note"`
}

func (Note) TableName() string { return "notes" }

// Recommendation is a reusable library recommendation.
type Recommendation struct {
	ID             string `gorm:"primaryKey;size:64" json:"id"`
	Recommendation string `json:"recommendation"`
}

func (Recommendation) TableName() string { return "recommendations" }

// PreviousReport caches a customer's most recent completed report so
// carry-over items can be proposed without a network round trip. Payload
// holds the origin response verbatim.
type PreviousReport struct {
	JobNumber  string `gorm:"primaryKey;size:64" json:"job_number"`
	CustomerID string `gorm:"index;size:64" json:"customer_id"`
	Payload    JSON   `json:"payload"`
}

func (PreviousReport) TableName() string { return "previous_reports" }
