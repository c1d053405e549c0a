package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tableserve/entity"
	"tableserve/repository"
)

var testDBSeq atomic.Int64

// setupTestDB opens a fresh in-memory database per test. The shared
// cache keeps every pooled connection on the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.DiningTable{},
		&entity.MenuCategory{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func seedOwner(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Role: "owner", IsVerified: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, owner *entity.User, name string, tableCount int) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		Name:           name,
		TableCount:     tableCount,
		IntegrationKey: fmt.Sprintf("key-%s-%d", name, testDBSeq.Load()),
		UserID:         owner.ID,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedCategory(t *testing.T, db *gorm.DB, rest *entity.Restaurant, name string) *entity.MenuCategory {
	t.Helper()
	c := &entity.MenuCategory{Name: name, RestaurantID: rest.ID}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedItem(t *testing.T, db *gorm.DB, cat *entity.MenuCategory, name, price string, available bool) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Currency:    "USD",
		IsAvailable: available,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func newTableService(db *gorm.DB) *TableService {
	return NewTableService(db, repository.NewTableRepository(db), repository.NewRestaurantRepository(db))
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, repository.NewOrderRepository(db), repository.NewMenuRepository(db), newTableService(db))
}

// tableID resolves a restaurant's table by its printed number,
// generating the tables the way a first read would.
func tableID(t *testing.T, db *gorm.DB, rest *entity.Restaurant, number int) uint {
	t.Helper()
	tables, err := newTableService(db).List(rest.ID)
	require.NoError(t, err)
	for _, tb := range tables {
		if tb.Number == number {
			return tb.ID
		}
	}
	t.Fatalf("no table with number %d", number)
	return 0
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got.String())
}
