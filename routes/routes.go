package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tableserve/configs"
	"tableserve/controllers"
	"tableserve/middlewares"
	"tableserve/pkg/resp"
	"tableserve/repository"
	"tableserve/services"
	"tableserve/utils"
	"tableserve/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	restSvc := services.NewRestaurantService(repository.NewRestaurantRepository(db))

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	restCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db, cfg.PublicBaseURL)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db, hub)
	agentCtrl := controllers.NewAgentController(db, hub)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.GET("/verify", authCtrl.Verify)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Owner surface
	owner := r.Group("/restaurants", middlewares.AuthMiddleware(cfg.JWTSecret, "owner"))
	{
		owner.POST("", restCtrl.Create)
		owner.GET("", restCtrl.List)
		owner.GET("/:id", restCtrl.Detail)
		owner.PATCH("/:id", restCtrl.Update)
		owner.DELETE("/:id", restCtrl.Delete)

		owner.GET("/:id/tables", tableCtrl.List)
		owner.GET("/:id/qrcodes/:number", tableCtrl.QRCode)

		owner.GET("/:id/menu", menuCtrl.Get)
		owner.POST("/:id/menu/upload", menuCtrl.UploadCSV)

		owner.GET("/:id/orders", orderCtrl.ListForRestaurant)
		owner.POST("/:id/tables/:tableId/orders", orderCtrl.Create)
		owner.GET("/:id/tables/:tableId/orders/:orderId", orderCtrl.Detail)
		owner.POST("/:id/tables/:tableId/orders/:orderId/items", orderCtrl.AddItems)
		owner.PATCH("/:id/tables/:tableId/orders/:orderId/status", orderCtrl.UpdateStatus)
		owner.DELETE("/:id/tables/:tableId/orders/:orderId", orderCtrl.Cancel)
	}

	// Diner widget surface, tenant from integration key
	public := r.Group("/public", middlewares.IntegrationKeyMiddleware(restSvc))
	{
		public.GET("/menu", agentCtrl.GetMenu)
		public.POST("/tables/:tableId/orders", orderCtrl.Create)
		public.GET("/tables/:tableId/orders/:orderId", orderCtrl.Detail)
		public.POST("/tables/:tableId/orders/:orderId/items", orderCtrl.AddItems)
		public.DELETE("/tables/:tableId/orders/:orderId", orderCtrl.Cancel)
	}

	// Voice agent tool surface, same services, same validation
	agent := r.Group("/agent/tools", middlewares.IntegrationKeyMiddleware(restSvc))
	{
		agent.POST("/get-menu", agentCtrl.GetMenu)
		agent.POST("/create-order", agentCtrl.CreateOrder)
		agent.POST("/get-order", agentCtrl.GetOrder)
		agent.POST("/add-items", agentCtrl.AddItems)
		agent.POST("/cancel-order", agentCtrl.CancelOrder)
	}

	// Live order feed for owner dashboards
	r.GET("/ws/restaurants/:id/orders", middlewares.AuthMiddleware(cfg.JWTSecret, "owner"), func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			resp.BadRequest(c, "invalid id")
			return
		}
		owned, err := restSvc.IsOwnedBy(uint(id), utils.CurrentUserID(c))
		if err != nil {
			resp.ServerError(c, err)
			return
		}
		if !owned {
			resp.Forbidden(c, "forbidden")
			return
		}
		hub.Serve(c, uint(id))
	})
}
