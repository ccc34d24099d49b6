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

package handlers

import (
	"errors"

	"github.com/fieldscope/inspection-worker/internal/services"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// JobsHandler handles job reads and mutations.
type JobsHandler struct {
	DB *gorm.DB
}

// GetJobs handles GET /client/jobs
// @Summary List jobs, or fetch one job with derived item counts
// @Tags Jobs
// @Produce json
// @Param job_number query string false "Job number for a single enriched job"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs [get]
func (h *JobsHandler) GetJobs(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber != "" {
		detail, err := services.GetJobDetail(h.DB, jobNumber)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				return utils.ErrorResponse(c, "No Job found")
			}
			return utils.ErrorResponse(c, err.Error())
		}
		return utils.SuccessResponse(c, detail)
	}

	jobs, err := services.ListJobs(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, jobs)
}

// UpdateJob handles PUT /client/jobs
// @Summary Partial-field merge update of a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs [put]
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")

	var patch services.JobPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.UpdateJob(h.DB, jobNumber, patch); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, "Job not found")
		}
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Job updated successfully")
}

// AddNote handles POST /client/jobs/notes
// @Summary Append a note to a job, rejecting exact duplicates
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs/notes [post]
func (h *JobsHandler) AddNote(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")

	var body struct {
		Note string `json:"note"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.AddJobNote(h.DB, jobNumber, body.Note); err != nil {
		if errors.Is(err, services.ErrDuplicateNote) {
			return utils.ErrorResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, "")
	}
	return utils.MessageResponse(c, "Note added successfully")
}

// DeleteNote handles PUT /client/jobs/notes
// @Summary Remove a note from a job by exact match
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /jobs/notes [put]
func (h *JobsHandler) DeleteNote(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")

	var body struct {
		Note string `json:"note"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.DeleteJobNote(h.DB, jobNumber, body.Note); err != nil {
		return utils.ErrorResponse(c, "")
	}
	return utils.MessageResponse(c, "Note deleted successfully")
}

// SetRecommendation handles POST /client/recommendations
// @Summary Set a job's recommendation
// @Tags Jobs
// @Accept json
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /recommendations [post]
func (h *JobsHandler) SetRecommendation(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")

	var patch services.JobPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.ErrorResponse(c, "")
	}

	if err := services.UpdateJob(h.DB, jobNumber, patch); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, "Job not found")
		}
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Recommendation added successfully")
}

// ClearRecommendation handles DELETE /client/recommendations
// @Summary Clear a job's recommendation
// @Tags Jobs
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /recommendations [delete]
func (h *JobsHandler) ClearRecommendation(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return utils.ErrorResponse(c, "")
	}

	if err := services.ClearRecommendation(h.DB, jobNumber); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.ErrorResponse(c, "Job not found")
		}
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Recommendation removed successfully")
}
