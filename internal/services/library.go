package services

import (
	"strings"

	"github.com/fieldscope/inspection-worker/internal/models"
	"gorm.io/gorm"
)

// LibraryIndexEntry is the lightweight projection used by autocomplete
// inputs.
type LibraryIndexEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListNotes returns all library notes.
func ListNotes(db *gorm.DB) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := db.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListCategories returns all item categories.
func ListCategories(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListRecommendations returns all library recommendations.
func ListRecommendations(db *gorm.DB) ([]models.Recommendation, error) {
	recommendations := make([]models.Recommendation, 0)
	if err := db.Find(&recommendations).Error; err != nil {
		return nil, err
	}
	return recommendations, nil
}

// LibraryIndex returns the id/name/category projection of every library
// item.
func LibraryIndex(db *gorm.DB) ([]LibraryIndexEntry, error) {
	entries := make([]LibraryIndexEntry, 0)
	if err := db.Model(&models.LibraryItem{}).
		Select("id", "name", "category").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListLibraryItems lists library items with the same pagination contract
// as report items. The category filter is an exact match on the foreign
// key; a name filter bypasses pagination.
func ListLibraryItems(db *gorm.DB, page int, categoryID, name string) (*PagedResult, error) {
	scope := func() *gorm.DB {
		q := db.Model(&models.LibraryItem{})
		if categoryID != "" {
			q = q.Where("category_id = ?", categoryID)
		}
		return q
	}

	if name != "" {
		var all []models.LibraryItem
		if err := scope().Find(&all).Error; err != nil {
			return nil, err
		}
		matched := make([]models.LibraryItem, 0, len(all))
		needle := strings.ToLower(name)
		for _, it := range all {
			if strings.Contains(strings.ToLower(it.Name), needle) {
				matched = append(matched, it)
			}
		}
		return &PagedResult{Data: matched, Pages: singlePage()}, nil
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, err
	}

	offset, pages := paginate(page, total)
	items := make([]models.LibraryItem, 0, PageSize)
	if err := scope().Offset(offset).Limit(PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &PagedResult{Data: items, Pages: pages}, nil
}
