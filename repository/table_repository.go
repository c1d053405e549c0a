package repository

import (
	"gorm.io/gorm"

	"tableserve/entity"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) CountForRestaurant(tx *gorm.DB, restID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.DiningTable{}).Where("restaurant_id = ?", restID).Count(&cnt).Error
	return cnt, err
}

func (r *TableRepository) CreateBatch(tx *gorm.DB, tables []entity.DiningTable) error {
	return tx.Create(&tables).Error
}

func (r *TableRepository) ListForRestaurant(restID uint) ([]entity.DiningTable, error) {
	var out []entity.DiningTable
	err := r.DB.Where("restaurant_id = ?", restID).Order("number").Find(&out).Error
	return out, err
}

// GetForRestaurant answers the ownership question in the WHERE clause:
// a table under another restaurant is simply not found.
func (r *TableRepository) GetForRestaurant(restID, tableID uint) (*entity.DiningTable, error) {
	var t entity.DiningTable
	if err := r.DB.Where("id = ? AND restaurant_id = ?", tableID, restID).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) GetByNumber(restID uint, number int) (*entity.DiningTable, error) {
	var t entity.DiningTable
	if err := r.DB.Where("restaurant_id = ? AND number = ?", restID, number).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}
