package handlers

import (
	"github.com/fieldscope/inspection-worker/internal/models"
	"github.com/fieldscope/inspection-worker/internal/services"
	"github.com/fieldscope/inspection-worker/internal/types"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SeedHandler handles the init-* install routes that seed the local
// store from the server once per login session.
type SeedHandler struct {
	DB *gorm.DB
}

// InitUser handles POST /client/init-user
// @Summary Store the login session
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-user [post]
func (h *SeedHandler) InitUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if user.AccessToken == "" {
		return utils.ErrorResponse(c, "")
	}

	if err := services.InitUser(h.DB, &user); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "User added successfully")
}

// InitNotes handles POST /client/init-notes
// @Summary Seed library notes
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-notes [post]
func (h *SeedHandler) InitNotes(c *fiber.Ctx) error {
	var body types.FlexList[models.Note]
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if err := services.ReplaceCollection(h.DB, body.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Notes added successfully")
}

// InitItems handles POST /client/init-items
// @Summary Seed library items
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-items [post]
func (h *SeedHandler) InitItems(c *fiber.Ctx) error {
	var body types.FlexList[models.LibraryItem]
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if err := services.ReplaceCollection(h.DB, body.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Items added successfully")
}

// InitCategories handles POST /client/init-categories
// @Summary Seed item categories
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-categories [post]
func (h *SeedHandler) InitCategories(c *fiber.Ctx) error {
	var body types.FlexList[models.Category]
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if err := services.ReplaceCollection(h.DB, body.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Categories added successfully")
}

// InitRecommendations handles POST /client/init-recommendations
// @Summary Seed library recommendations
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-recommendations [post]
func (h *SeedHandler) InitRecommendations(c *fiber.Ctx) error {
	var body types.FlexList[models.Recommendation]
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if err := services.ReplaceCollection(h.DB, body.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Recommendations added successfully")
}

// InitJobs handles POST /client/init-jobs
// @Summary Seed the upcoming job list
// @Tags Install
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /init-jobs [post]
func (h *SeedHandler) InitJobs(c *fiber.Ctx) error {
	var body types.FlexList[models.Job]
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "")
	}
	if err := services.ReplaceCollection(h.DB, body.Slice()); err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.MessageResponse(c, "Jobs added successfully")
}
