package repository

import (
	"gorm.io/gorm"

	"tableserve/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) ListForOwner(userID uint) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

// GetForOwner scopes the lookup to the owner; a restaurant belonging to
// another user is indistinguishable from a missing one.
func (r *RestaurantRepository) GetForOwner(restID, userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("id = ? AND user_id = ?", restID, userID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetByID(restID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, restID).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetByIntegrationKey(key string) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("integration_key = ?", key).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) Update(rest *entity.Restaurant, updates map[string]any) error {
	return r.DB.Model(rest).Updates(updates).Error
}

// Delete removes the restaurant and everything hanging off it in one
// transaction: order items, orders, menu items, categories, tables.
func (r *RestaurantRepository) Delete(restID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("order_id IN (?)", tx.Model(&entity.Order{}).Select("id").Where("restaurant_id = ?", restID)).
			Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("restaurant_id = ?", restID).Delete(&entity.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("category_id IN (?)", tx.Model(&entity.MenuCategory{}).Select("id").Where("restaurant_id = ?", restID)).
			Delete(&entity.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("restaurant_id = ?", restID).Delete(&entity.MenuCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("restaurant_id = ?", restID).Delete(&entity.DiningTable{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.Restaurant{}, restID).Error
	})
}
