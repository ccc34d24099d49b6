package handlers

import (
	"github.com/fieldscope/inspection-worker/internal/services"
	"github.com/fieldscope/inspection-worker/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LibraryHandler serves the read-only reference collections kept in the
// local store: notes, categories, recommendations, and the item library.
type LibraryHandler struct {
	DB *gorm.DB
}

// GetNotes handles GET /client/notes
// @Summary List all reusable notes
// @Tags Library
// @Produce json
// @Success 200 {array} models.Note
// @Failure 400 {object} map[string]interface{}
// @Router /notes [get]
func (h *LibraryHandler) GetNotes(c *fiber.Ctx) error {
	notes, err := services.ListNotes(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, notes)
}

// GetCategories handles GET /client/categories
// @Summary List all item categories
// @Tags Library
// @Produce json
// @Success 200 {array} models.Category
// @Failure 400 {object} map[string]interface{}
// @Router /categories [get]
func (h *LibraryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategories(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, categories)
}

// GetRecommendations handles GET /client/recommendations
// @Summary List all reusable recommendations
// @Tags Library
// @Produce json
// @Success 200 {array} models.Recommendation
// @Failure 400 {object} map[string]interface{}
// @Router /recommendations [get]
func (h *LibraryHandler) GetRecommendations(c *fiber.Ctx) error {
	recommendations, err := services.ListRecommendations(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, recommendations)
}

// GetItemsIndex handles GET /client/items-index
// @Summary List id, name, and category of every library item
// @Tags Library
// @Produce json
// @Success 200 {array} services.LibraryIndexEntry
// @Failure 400 {object} map[string]interface{}
// @Router /items-index [get]
func (h *LibraryHandler) GetItemsIndex(c *fiber.Ctx) error {
	index, err := services.LibraryIndex(h.DB)
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, index)
}

// GetItemsLibrary handles GET /client/items-library
// @Summary Page through library items, filtered by category or name
// @Tags Library
// @Produce json
// @Param page query int false "Page number (0 and 1 both mean first)"
// @Param category_id query string false "Exact category id filter"
// @Param name query string false "Substring name filter (unpaginated)"
// @Success 200 {object} services.PagedResult
// @Failure 400 {object} map[string]interface{}
// @Router /items-library [get]
func (h *LibraryHandler) GetItemsLibrary(c *fiber.Ctx) error {
	result, err := services.ListLibraryItems(h.DB, pageParam(c),
		c.Query("category_id"), c.Query("name"))
	if err != nil {
		return utils.ErrorResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, result)
}
