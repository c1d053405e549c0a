package repository

import (
	"gorm.io/gorm"

	"tableserve/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) ListCategories(restID uint) ([]entity.MenuCategory, error) {
	var out []entity.MenuCategory
	err := r.DB.Preload("Items").
		Where("restaurant_id = ?", restID).Order("id").Find(&out).Error
	return out, err
}

// FindOrderableItems resolves the requested ids to items that exist,
// are available, and belong to the restaurant through their category.
// Ids failing any of those checks are silently absent from the result;
// the caller reports them.
func (r *MenuRepository) FindOrderableItems(itemIDs []uint, restID uint) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.
		Joins("JOIN menu_categories mc ON mc.id = menu_items.category_id").
		Where("menu_items.id IN ? AND mc.restaurant_id = ? AND menu_items.is_available = ?", itemIDs, restID, true).
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetItemForRestaurant(restID, itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.
		Joins("JOIN menu_categories mc ON mc.id = menu_items.category_id").
		Where("menu_items.id = ? AND mc.restaurant_id = ?", itemID, restID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuForRestaurant wipes the whole catalog. Callers run it
// inside the same transaction that recreates the menu.
func (r *MenuRepository) DeleteMenuForRestaurant(tx *gorm.DB, restID uint) error {
	if err := tx.Unscoped().
		Where("category_id IN (?)", tx.Model(&entity.MenuCategory{}).Select("id").Where("restaurant_id = ?", restID)).
		Delete(&entity.MenuItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("restaurant_id = ?", restID).Delete(&entity.MenuCategory{}).Error
}

func (r *MenuRepository) CreateCategory(tx *gorm.DB, c *entity.MenuCategory) error {
	return tx.Create(c).Error
}

func (r *MenuRepository) CreateItem(tx *gorm.DB, m *entity.MenuItem) error {
	return tx.Create(m).Error
}
