// sync.go
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

package handlers

import (
	"log"

	"github.com/fieldscope/inspection-worker/internal/syncer"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// SyncHandler exposes the pull and push phases of the sync orchestrator
// as routes the app triggers on reconnect and on a timer.
type SyncHandler struct {
	Syncer *syncer.Syncer
}

// SyncJobs handles GET /client/sync-jobs
// @Summary Pull jobs and library updates from the remote API
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /sync-jobs [get]
func (h *SyncHandler) SyncJobs(c *fiber.Ctx) error {
	if err := h.Syncer.SyncJobs(c.Context()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "App and jobs synced successfully")
}

// SyncItems handles GET /client/sync-items
//
// Push failures are logged but never surfaced. The app fires this route
// in the background and pending items stay pending until the next pass.
//
// @Summary Push the active job's pending items to the remote API
// @Tags Sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /sync-items [get]
func (h *SyncHandler) SyncItems(c *fiber.Ctx) error {
	if err := h.Syncer.SyncItems(c.Context()); err != nil {
		log.Printf("sync-items: %v", err)
	}
	return utils.MessageResponse(c, "Items synced successfully")
}
