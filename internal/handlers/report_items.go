// report_items.go
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
	"errors"

	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/fieldscope/inspection-worker/internal/services"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReportItemsHandler handles report item authoring, queries, deletion,
// and the pending-batch routes the push sync uses.
type ReportItemsHandler struct {
	DB *gorm.DB
}

// AddItem handles POST /client/jobs/report-items
// @Summary Upsert a report item, promoting the job to In Progress
// @Tags ReportItems
// @Accept json
// @Produce json
// @Param job_number query string false "Job number to promote"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs/report-items [post]
func (h *ReportItemsHandler) AddItem(c *fiber.Ctx) error {
	var item models.ReportItem
	if err := c.BodyParser(&item); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.AddReportItem(h.DB, c.Query("job_number"), &item); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Item added successfully")
}

// GetItems handles GET /client/jobs/report-items
// @Summary Fetch one item by id, or page through a job's new items
// @Tags ReportItems
// @Produce json
// @Param id query string false "Report item id"
// @Param job_number query string false "Job number"
// @Param page query int false "Page number (0 and 1 both mean first)"
// @Param category query string false "Exact category filter"
// @Param name query string false "Substring name filter (unpaginated)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs/report-items [get]
func (h *ReportItemsHandler) GetItems(c *fiber.Ctx) error {
	if id := c.Query("id"); id != "" {
		item, err := services.GetReportItem(h.DB, id)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.ErrorResponse(c, "")
			}
			return utils.ErrorResponse(c, err.Error())
		}
		return utils.SuccessResponse(c, item)
	}

	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return utils.SuccessResponse(c, fiber.Map{})
	}

	result, err := services.ListReportItems(h.DB, jobNumber, pageParam(c),
		c.Query("category"), c.Query("name"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, "")
		}
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, result)
}

// DeleteItem handles DELETE /client/jobs/report-items
// @Summary Hard-delete a report item and record a tombstone
// @Tags ReportItems
// @Produce json
// @Param id query string true "Report item id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs/report-items [delete]
func (h *ReportItemsHandler) DeleteItem(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return utils.ErrorResponse(c, "")
	}

	if err := services.DeleteReportItem(h.DB, id); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Inspection item deleted successfully")
}

// GetNonSynced handles GET /client/non-synced-items
// @Summary Collect a job's pending items plus all tombstones as one batch
// @Tags Sync
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /non-synced-items [get]
func (h *ReportItemsHandler) GetNonSynced(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return utils.ErrorResponse(c, "")
	}

	batch, err := services.GetNonSyncedItems(h.DB, jobNumber)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, "Job not found")
		}
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, batch)
}

// ConfirmSynced handles PUT /client/non-synced-items
// @Summary Mark server-confirmed items synced and clear tombstones
// @Tags Sync
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /non-synced-items [put]
func (h *ReportItemsHandler) ConfirmSynced(c *fiber.Ctx) error {
	var body struct {
		ReportItems []string `json:"reportItems"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.ConfirmSyncedItems(h.DB, body.ReportItems); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Items synced successfully")
}

// GetPreviousItems handles GET /client/previous-items
// @Summary List a report's carried-over items
// @Tags ReportItems
// @Produce json
// @Param report_id query string true "Report id"
// @Success 200 {array} models.ReportItem
// @Failure 400 {object} map[string]interface{}
// @Router /previous-items [get]
func (h *ReportItemsHandler) GetPreviousItems(c *fiber.Ctx) error {
	reportID := c.Query("report_id")
	if reportID == "" {
		return utils.ErrorResponse(c, "")
	}

	items, err := services.ListPreviousItems(h.DB, reportID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, items)
}

// GetPreviousItemRefs handles GET /client/previous-item-id
// @Summary List id back-references of a report's carried-over items
// @Tags ReportItems
// @Produce json
// @Param report_id query string true "Report id"
// @Success 200 {array} services.PreviousItemRef
// @Failure 400 {object} map[string]interface{}
// @Router /previous-item-id [get]
func (h *ReportItemsHandler) GetPreviousItemRefs(c *fiber.Ctx) error {
	reportID := c.Query("report_id")
	if reportID == "" {
		return utils.ErrorResponse(c, "")
	}

	refs, err := services.ListPreviousItemRefs(h.DB, reportID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, refs)
}
