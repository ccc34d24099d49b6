package handlers

import (
	"encoding/json"

	"github.com/fieldscope/inspection-worker/internal/services"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PreviousReportHandler caches whole previous-report payloads so the app
// can review past inspections while offline.
type PreviousReportHandler struct {
	DB *gorm.DB
}

// GetReport handles GET /client/previous-report
// @Summary Fetch a cached previous report by job number
// @Tags PreviousReports
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /previous-report [get]
func (h *PreviousReportHandler) GetReport(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return utils.ErrorResponse(c, "")
	}

	report, err := services.GetPreviousReport(h.DB, jobNumber)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(report)
}

// SetReport handles POST /client/previous-report
// @Summary Cache a previous report payload for offline review
// @Tags PreviousReports
// @Accept json
// @Produce json
// @Param job_number query string true "Job number"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /previous-report [post]
func (h *PreviousReportHandler) SetReport(c *fiber.Ctx) error {
	jobNumber := c.Query("job_number")
	if jobNumber == "" {
		return utils.ErrorResponse(c, "")
	}

	body := c.Body()
	if !json.Valid(body) {
		return utils.ErrorResponse(c, "")
	}

	if err := services.SetPreviousReport(h.DB, jobNumber, json.RawMessage(body)); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Previous report saved to offline database")
}
