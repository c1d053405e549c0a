package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
)

// AgentController is the tool-invocation surface for the voice agent.
// The agent supplies raw numeric ids from its own reasoning; the same
// services validate them exactly as for any other caller. The tenant
// comes from the integration-key middleware.
type AgentController struct {
	Orders *services.OrderService
	Menu   *services.MenuService
}

func NewAgentController(db *gorm.DB, notifier services.OrderNotifier) *AgentController {
	restRepo := repository.NewRestaurantRepository(db)
	tables := services.NewTableService(db, repository.NewTableRepository(db), restRepo)
	menuRepo := repository.NewMenuRepository(db)
	svc := services.NewOrderService(db, repository.NewOrderRepository(db), menuRepo, tables)
	svc.Notifier = notifier
	return &AgentController{
		Orders: svc,
		Menu:   services.NewMenuService(menuRepo),
	}
}

// POST /agent/tools/get-menu
func (ag *AgentController) GetMenu(c *gin.Context) {
	restID := utils.CurrentRestaurantID(c)
	categories, err := ag.Menu.ListByRestaurant(restID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": categories})
}

type agentCreateOrderReq struct {
	TableID uint                   `json:"tableId" binding:"required"`
	Items   []services.OrderItemIn `json:"items" binding:"required,min=1"`
}

// POST /agent/tools/create-order
func (ag *AgentController) CreateOrder(c *gin.Context) {
	var req agentCreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ag.Orders.Create(utils.CurrentRestaurantID(c), req.TableID, req.Items)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.Created(c, order)
}

type agentOrderRef struct {
	TableID uint `json:"tableId" binding:"required"`
	OrderID uint `json:"orderId" binding:"required"`
}

// POST /agent/tools/get-order
func (ag *AgentController) GetOrder(c *gin.Context) {
	var req agentOrderRef
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ag.Orders.Get(utils.CurrentRestaurantID(c), req.TableID, req.OrderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}

type agentAddItemsReq struct {
	TableID uint                   `json:"tableId" binding:"required"`
	OrderID uint                   `json:"orderId" binding:"required"`
	Items   []services.OrderItemIn `json:"items" binding:"required,min=1"`
}

// POST /agent/tools/add-items
func (ag *AgentController) AddItems(c *gin.Context) {
	var req agentAddItemsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ag.Orders.AddItems(utils.CurrentRestaurantID(c), req.TableID, req.OrderID, req.Items)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}

// POST /agent/tools/cancel-order
func (ag *AgentController) CancelOrder(c *gin.Context) {
	var req agentOrderRef
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := ag.Orders.Cancel(utils.CurrentRestaurantID(c), req.TableID, req.OrderID)
	if err != nil {
		respondErr(c, err)
		return
	}
	resp.OK(c, order)
}
