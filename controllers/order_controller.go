package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

// OrderController serves both the owner surface (JWT, restaurant id in
// the path) and the public widget surface (integration key resolves the
// restaurant). Both funnel into the same service calls.
type OrderController struct {
	Service     *services.OrderService
	Restaurants *services.RestaurantService
}

func NewOrderController(db *gorm.DB, notifier services.OrderNotifier) *OrderController {
	restRepo := repository.NewRestaurantRepository(db)
	tables := services.NewTableService(db, repository.NewTableRepository(db), restRepo)
	svc := services.NewOrderService(db, repository.NewOrderRepository(db), repository.NewMenuRepository(db), tables)
	svc.Notifier = notifier
	return &OrderController{
		Service:     svc,
		Restaurants: services.NewRestaurantService(restRepo),
	}
}

// restaurantID picks the tenant: set by the integration-key middleware
// on public routes, owner-checked path parameter otherwise.
func (oc *OrderController) restaurantID(c *gin.Context) (uint, bool) {
	if rid := utils.CurrentRestaurantID(c); rid != 0 {
		return rid, true
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return 0, false
	}
	owned, err := oc.Restaurants.IsOwnedBy(id, utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return 0, false
	}
	if !owned {
		resp.Forbidden(c, "forbidden")
		return 0, false
	}
	return id, true
}

type CreateOrderReq struct {
	Items []services.OrderItemIn `json:"items" binding:"required,min=1"`
}

func (oc *OrderController) Create(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	var req CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.Create(restID, tableID, req.Items)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, order)
}

func (oc *OrderController) Detail(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.Service.Get(restID, tableID, orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /restaurants/:id/orders?status=&limit=
func (oc *OrderController) ListForRestaurant(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	limit := 0
	if v := c.Query("limit"); v != "" {
		limit = atoiDefault(v, 0)
	}
	orders, err := oc.Service.ListForRestaurant(restID, c.Query("status"), limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": orders})
}

type AddItemsReq struct {
	Items []services.OrderItemIn `json:"items" binding:"required,min=1"`
}

func (oc *OrderController) AddItems(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	var req AddItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.AddItems(restID, tableID, orderID, req.Items)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.UpdateStatus(restID, tableID, orderID, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}

func (oc *OrderController) Cancel(c *gin.Context) {
	restID, ok := oc.restaurantID(c)
	if !ok {
		return
	}
	tableID, ok := uintParam(c, "tableId")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "orderId")
	if !ok {
		return
	}

	order, err := oc.Service.Cancel(restID, tableID, orderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}
