package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tableserve/entity"
)

func TestCreateOrderComputesExactTotal(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 5)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 5)

	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 2}})
	require.NoError(t, err)

	requireDecimalEqual(t, "25.98", order.Total)
	require.Equal(t, "USD", order.Currency)
	require.Equal(t, entity.OrderPending, order.Status)
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)
	requireDecimalEqual(t, "12.99", order.Items[0].UnitPrice)
	requireDecimalEqual(t, "25.98", order.Items[0].LineTotal)
	require.Equal(t, tID, order.Table.ID)
}

func TestCreateOrderMultipleLinesNoRoundingDrift(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	a := seedItem(t, db, cat, "Burger", "12.99", true)
	b := seedItem(t, db, cat, "Fries", "3.49", true)
	c := seedItem(t, db, cat, "Shake", "5.05", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)

	order, err := svc.Create(rest.ID, tID, []OrderItemIn{
		{MenuItemID: a.ID, Quantity: 2},
		{MenuItemID: b.ID, Quantity: 3},
		{MenuItemID: c.ID, Quantity: 1},
	})
	require.NoError(t, err)

	// 25.98 + 10.47 + 5.05
	requireDecimalEqual(t, "41.50", order.Total)
}

func TestCreateOrderUnknownItemListsMissingIDs(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)

	_, err := svc.Create(rest.ID, tID, []OrderItemIn{
		{MenuItemID: item.ID, Quantity: 1},
		{MenuItemID: 999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrBadRequest)
	require.Contains(t, err.Error(), "999")

	// nothing persisted
	var orders, items int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&entity.OrderItem{}).Count(&items).Error)
	require.Zero(t, orders)
	require.Zero(t, items)
}

func TestCreateOrderRejectsUnavailableAndForeignItems(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	other := seedRestaurant(t, db, owner, "trattoria", 2)
	cat := seedCategory(t, db, rest, "Mains")
	otherCat := seedCategory(t, db, other, "Mains")
	offMenu := seedItem(t, db, cat, "Special", "20.00", false)
	foreign := seedItem(t, db, otherCat, "Pasta", "11.00", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)

	_, err := svc.Create(rest.ID, tID, []OrderItemIn{
		{MenuItemID: offMenu.ID, Quantity: 1},
		{MenuItemID: foreign.ID, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrBadRequest)
	require.Contains(t, err.Error(), "unavailable")
}

func TestOrderOperationsRejectForeignTable(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	other := seedRestaurant(t, db, owner, "trattoria", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	foreignTable := tableID(t, db, other, 1)

	// table exists, but under a different restaurant
	_, err := svc.Create(rest.ID, foreignTable, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(rest.ID, foreignTable, 1)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddItems(rest.ID, foreignTable, 1, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Cancel(rest.ID, foreignTable, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetOrderIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)
	created, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 2}})
	require.NoError(t, err)

	first, err := svc.Get(rest.ID, tID, created.ID)
	require.NoError(t, err)
	second, err := svc.Get(rest.ID, tID, created.ID)
	require.NoError(t, err)

	require.Equal(t, first.Status, second.Status)
	require.True(t, first.Total.Equal(second.Total))
	require.Len(t, second.Items, len(first.Items))
}

func TestAddItemsUpdatesTotalIncrementally(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 5)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 5)

	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 2}})
	require.NoError(t, err)
	requireDecimalEqual(t, "25.98", order.Total)

	updated, err := svc.AddItems(rest.ID, tID, order.ID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)
	requireDecimalEqual(t, "38.97", updated.Total)
	require.Len(t, updated.Items, 2)

	// price changes after ordering must not move the stored snapshot
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", item.ID).
		Update("price", "99.99").Error)
	reread, err := svc.Get(rest.ID, tID, order.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "38.97", reread.Total)
	requireDecimalEqual(t, "12.99", reread.Items[0].UnitPrice)
}

func TestAddItemsTwiceEqualsOneCombinedCall(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	a := seedItem(t, db, cat, "Burger", "12.99", true)
	b := seedItem(t, db, cat, "Fries", "3.49", true)

	svc := newOrderService(db)
	t1 := tableID(t, db, rest, 1)
	t2 := tableID(t, db, rest, 2)

	split, err := svc.Create(rest.ID, t1, []OrderItemIn{{MenuItemID: a.ID, Quantity: 1}})
	require.NoError(t, err)
	split, err = svc.AddItems(rest.ID, t1, split.ID, []OrderItemIn{{MenuItemID: b.ID, Quantity: 2}})
	require.NoError(t, err)

	combined, err := svc.Create(rest.ID, t2, []OrderItemIn{
		{MenuItemID: a.ID, Quantity: 1},
		{MenuItemID: b.ID, Quantity: 2},
	})
	require.NoError(t, err)

	require.True(t, split.Total.Equal(combined.Total),
		"split %s vs combined %s", split.Total, combined.Total)
}

func TestAddItemsRejectedOnTerminalOrder(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)
	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(rest.ID, tID, order.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderCancelled, cancelled.Status)

	_, err = svc.AddItems(rest.ID, tID, order.ID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestAddItemsFailureLeavesOrderUntouched(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)
	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.AddItems(rest.ID, tID, order.ID, []OrderItemIn{{MenuItemID: 424242, Quantity: 1}})
	require.ErrorIs(t, err, ErrBadRequest)
	require.Contains(t, err.Error(), "424242")

	reread, err := svc.Get(rest.ID, tID, order.ID)
	require.NoError(t, err)
	require.Len(t, reread.Items, 1)
	requireDecimalEqual(t, "12.99", reread.Total)
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)
	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)

	// skipping ahead is rejected
	_, err = svc.UpdateStatus(rest.ID, tID, order.ID, entity.OrderServed)
	require.ErrorIs(t, err, ErrBadRequest)

	for _, status := range []string{
		entity.OrderPreparing, entity.OrderReady, entity.OrderServed, entity.OrderCompleted,
	} {
		order, err = svc.UpdateStatus(rest.ID, tID, order.ID, status)
		require.NoError(t, err)
		require.Equal(t, status, order.Status)
	}

	// terminal: no further movement, no cancel
	_, err = svc.UpdateStatus(rest.ID, tID, order.ID, entity.OrderCancelled)
	require.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.UpdateStatus(rest.ID, tID, order.ID, "LOST")
	require.ErrorIs(t, err, ErrBadRequest)
}

func TestCancelKeepsOrderHistory(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)
	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(rest.ID, tID, order.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderCancelled, cancelled.Status)

	// cancel marks, never deletes
	reread, err := svc.Get(rest.ID, tID, order.ID)
	require.NoError(t, err)
	require.Equal(t, entity.OrderCancelled, reread.Status)
	require.Len(t, reread.Items, 1)
}

type capturingNotifier struct {
	events []OrderEvent
}

func (n *capturingNotifier) PublishOrderEvent(restaurantID uint, event OrderEvent) {
	n.events = append(n.events, event)
}

func TestOrderEventsPublished(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	notifier := &capturingNotifier{}
	svc.Notifier = notifier

	tID := tableID(t, db, rest, 1)
	order, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(rest.ID, tID, order.ID, entity.OrderPreparing)
	require.NoError(t, err)

	require.Len(t, notifier.events, 2)
	require.Equal(t, "order_created", notifier.events[0].Type)
	require.Equal(t, "order_status_changed", notifier.events[1].Type)
}

func TestQuantityMustBePositive(t *testing.T) {
	db := setupTestDB(t)
	owner := seedOwner(t, db, "owner@example.com")
	rest := seedRestaurant(t, db, owner, "bistro", 2)
	cat := seedCategory(t, db, rest, "Mains")
	item := seedItem(t, db, cat, "Burger", "12.99", true)

	svc := newOrderService(db)
	tID := tableID(t, db, rest, 1)

	for _, qty := range []int{0, -1} {
		_, err := svc.Create(rest.ID, tID, []OrderItemIn{{MenuItemID: item.ID, Quantity: qty}})
		require.ErrorIs(t, err, ErrBadRequest)
	}

	var count int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&count).Error)
	require.Zero(t, count)
}
