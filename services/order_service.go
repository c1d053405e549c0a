package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tableserve/entity"
	"tableserve/repository"
)

// OrderNotifier receives order events for realtime fan-out. Publishing
// must never block order processing.
type OrderNotifier interface {
	PublishOrderEvent(restaurantID uint, event OrderEvent)
}

type OrderEvent struct {
	Type  string        `json:"type"` // order_created, order_updated, order_status_changed
	Order *entity.Order `json:"order"`
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	MenuRepo *repository.MenuRepository
	Tables   *TableService
	Notifier OrderNotifier // optional
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, menuRepo *repository.MenuRepository, tables *TableService) *OrderService {
	return &OrderService{DB: db, Repo: repo, MenuRepo: menuRepo, Tables: tables}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// resolveItems turns requested ids into current menu records, scoped to
// the restaurant and filtered to available items. Any id that fails a
// check is reported back explicitly so the caller can correct and retry.
func (s *OrderService) resolveItems(restID uint, items []OrderItemIn) (map[uint]entity.MenuItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items is required", ErrBadRequest)
	}
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrBadRequest)
		}
		ids = append(ids, it.MenuItemID)
	}

	found, err := s.MenuRepo.FindOrderableItems(ids, restID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.MenuItem, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	var missing []uint
	seen := map[uint]bool{}
	for _, id := range ids {
		if _, ok := byID[id]; !ok && !seen[id] {
			missing = append(missing, id)
			seen[id] = true
		}
	}
	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, fmt.Errorf("%w: menu items not found or unavailable: %s", ErrBadRequest, joinIDs(missing))
	}
	return byID, nil
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ", ")
}

func lineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

// Create places a new order for a table. Everything is validated before
// the transaction opens; either the order and all its items persist, or
// nothing does.
func (s *OrderService) Create(restID, tableID uint, items []OrderItemIn) (*entity.Order, error) {
	table, err := s.Tables.Resolve(restID, tableID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolveItems(restID, items)
	if err != nil {
		return nil, err
	}

	// Menus are single-currency; the first resolved item sets the
	// order's currency.
	currency := resolved[items[0].MenuItemID].Currency

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(lineTotal(resolved[it.MenuItemID].Price, it.Quantity))
	}

	var orderID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Total:        total,
			Currency:     currency,
			Status:       entity.OrderPending,
			TableID:      table.ID,
			RestaurantID: restID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, it := range items {
			m := resolved[it.MenuItemID]
			oi := entity.OrderItem{
				Quantity:   it.Quantity,
				UnitPrice:  m.Price,
				LineTotal:  lineTotal(m.Price, it.Quantity),
				OrderID:    order.ID,
				MenuItemID: m.ID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrderDetail(restID, table.ID, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(restID, OrderEvent{Type: "order_created", Order: out})
	return out, nil
}

// Get returns the full order aggregate after walking the ownership
// chain restaurant -> table -> order. Reads never mutate order state.
func (s *OrderService) Get(restID, tableID, orderID uint) (*entity.Order, error) {
	if _, err := s.Tables.Resolve(restID, tableID); err != nil {
		return nil, err
	}
	o, err := s.Repo.GetOrderDetail(restID, tableID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) ListForRestaurant(restID uint, status string, limit int) ([]entity.Order, error) {
	return s.Repo.ListForRestaurant(restID, status, limit)
}

// AddItems appends lines to an open order. The stored total moves
// incrementally: previous total plus the new lines, not a recompute
// over all items. The guarded total update keeps two concurrent adds
// from losing each other.
func (s *OrderService) AddItems(restID, tableID, orderID uint, items []OrderItemIn) (*entity.Order, error) {
	if _, err := s.Tables.Resolve(restID, tableID); err != nil {
		return nil, err
	}
	order, err := s.Repo.GetOrderForTable(restID, tableID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if IsTerminalStatus(order.Status) {
		return nil, fmt.Errorf("%w: order is %s, no further items can be added", ErrBadRequest, order.Status)
	}

	resolved, err := s.resolveItems(restID, items)
	if err != nil {
		return nil, err
	}

	delta := decimal.Zero
	for _, it := range items {
		delta = delta.Add(lineTotal(resolved[it.MenuItemID].Price, it.Quantity))
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, it := range items {
			m := resolved[it.MenuItemID]
			oi := entity.OrderItem{
				Quantity:   it.Quantity,
				UnitPrice:  m.Price,
				LineTotal:  lineTotal(m.Price, it.Quantity),
				OrderID:    order.ID,
				MenuItemID: m.ID,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		affected, err := s.Repo.UpdateTotalGuard(tx, order.ID, order.Total, order.Total.Add(delta))
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order changed concurrently, retry", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrderDetail(restID, tableID, order.ID)
	if err != nil {
		return nil, err
	}
	s.publish(restID, OrderEvent{Type: "order_updated", Order: out})
	return out, nil
}

// UpdateStatus moves the order along the status machine; transitions
// outside the table are rejected.
func (s *OrderService) UpdateStatus(restID, tableID, orderID uint, newStatus string) (*entity.Order, error) {
	if !IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, newStatus)
	}
	if _, err := s.Tables.Resolve(restID, tableID); err != nil {
		return nil, err
	}
	order, err := s.Repo.GetOrderForTable(restID, tableID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if !CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrBadRequest, order.Status, newStatus)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, order.ID, order.Status, newStatus)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order changed concurrently, retry", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrderDetail(restID, tableID, order.ID)
	if err != nil {
		return nil, err
	}
	s.publish(restID, OrderEvent{Type: "order_status_changed", Order: out})
	return out, nil
}

// Cancel marks the order CANCELLED rather than deleting it, so order
// history survives.
func (s *OrderService) Cancel(restID, tableID, orderID uint) (*entity.Order, error) {
	return s.UpdateStatus(restID, tableID, orderID, entity.OrderCancelled)
}

func (s *OrderService) publish(restID uint, ev OrderEvent) {
	if s.Notifier != nil {
		s.Notifier.PublishOrderEvent(restID, ev)
	}
}
