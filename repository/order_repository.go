package repository

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tableserve/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetOrderForTable scopes the lookup to restaurant and table at once;
// an order that exists under another tenant or table is not found.
func (r *OrderRepository) GetOrderForTable(restID, tableID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Where("id = ? AND restaurant_id = ? AND table_id = ?", orderID, restID, tableID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderDetail returns the full aggregate: items with their menu item
// detail, plus the table.
func (r *OrderRepository) GetOrderDetail(restID, tableID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.
		Preload("Items").Preload("Items.MenuItem").Preload("Table").
		Where("id = ? AND restaurant_id = ? AND table_id = ?", orderID, restID, tableID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForRestaurant(restID uint, status string, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Preload("Items").Preload("Table").
		Where("restaurant_id = ?", restID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []entity.Order
	err := q.Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// UpdateStatusGuard flips the status only when the current one matches;
// RowsAffected 0 means the order moved underneath us.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateTotalGuard writes the new total only if the stored one still
// equals prev, so concurrent item additions cannot lose an update.
func (r *OrderRepository) UpdateTotalGuard(tx *gorm.DB, orderID uint, prev, next decimal.Decimal) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND total = ?", orderID, prev).
		Update("total", next)
	return res.RowsAffected, res.Error
}
